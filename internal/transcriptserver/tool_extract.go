package transcriptserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

type ExtractInput struct {
	URL             string `json:"url" jsonschema:"YouTube video URL (youtube.com/watch?v=, youtu.be/ or youtube.com/embed/)"`
	Refresh         bool   `json:"refresh,omitempty" jsonschema:"Re-run extraction even if a stored result exists"`
	IncludeSegments bool   `json:"include_segments,omitempty" jsonschema:"Include the raw timed segments in the response"`
}

type ExtractOutput struct {
	VideoID         string               `json:"video_id"`
	Title           string               `json:"title,omitempty"`
	Uploader        string               `json:"uploader,omitempty"`
	DurationSeconds int                  `json:"duration_seconds,omitempty"`
	ViewCount       int64                `json:"view_count,omitempty"`
	UploadDate      string               `json:"upload_date,omitempty"`
	MetadataError   string               `json:"metadata_error,omitempty"`
	Language        string               `json:"language"`
	Origin          string               `json:"origin"`
	Format          string               `json:"format"`
	WordCount       int                  `json:"word_count"`
	SegmentCount    int                  `json:"segment_count"`
	PlainText       string               `json:"plain_text"`
	TimedText       string               `json:"timed_text"`
	Segments        []transcript.Segment `json:"segments,omitempty"`
	Cached          bool                 `json:"cached"`
}

func registerExtract(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_extract",
		Description: "Extract the transcript of a YouTube video. Tries manual captions before auto-generated ones and VTT, SRT, TTML in that order. Returns video metadata, the plain text, the [MM:SS]-annotated text and the word count.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
		out, err := svc.Extract(ctx, input)
		return nil, out, err
	})
}

// Extract runs or recalls the pipeline for one URL.
func (s *Service) Extract(ctx context.Context, input ExtractInput) (ExtractOutput, error) {
	if input.URL == "" {
		return ExtractOutput{}, fmt.Errorf("url is required")
	}
	rep, cached, err := s.report(ctx, input.URL, input.Refresh)
	if err != nil {
		return ExtractOutput{}, err
	}
	res := rep.Result
	out := ExtractOutput{
		VideoID:       rep.VideoID.String(),
		MetadataError: rep.MetadataErr,
		Language:      res.Language,
		Origin:        string(res.Origin),
		Format:        string(res.Format),
		WordCount:     res.WordCount,
		SegmentCount:  len(res.Segments),
		PlainText:     res.PlainText,
		TimedText:     res.TimedText,
		Cached:        cached,
	}
	if m := rep.Metadata; m != nil {
		out.Title, out.Uploader, out.UploadDate = m.Title, m.Uploader, m.UploadDate
		out.DurationSeconds, out.ViewCount = m.DurationSeconds, m.ViewCount
	}
	if input.IncludeSegments {
		out.Segments = res.Segments
	}
	return out, nil
}
