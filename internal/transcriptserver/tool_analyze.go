package transcriptserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/analysis"
)

type AnalyzeInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL"`
}

type AnalyzeOutput struct {
	VideoID string         `json:"video_id"`
	Stats   analysis.Stats `json:"stats"`
}

func registerAnalyze(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_analyze",
		Description: "Text statistics for a video's transcript: word, sentence and paragraph counts, reading time at 200 words per minute, average sentence length, top 10 words, unique word ratio and a difficulty label.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, AnalyzeOutput, error) {
		out, err := svc.Analyze(ctx, input)
		return nil, out, err
	})
}

// Analyze computes statistics over the plain transcript.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (AnalyzeOutput, error) {
	rep, _, err := s.report(ctx, input.URL, false)
	if err != nil {
		return AnalyzeOutput{}, err
	}
	return AnalyzeOutput{VideoID: rep.VideoID.String(), Stats: *analysis.Analyze(rep.Result.PlainText)}, nil
}
