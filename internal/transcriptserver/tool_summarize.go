package transcriptserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/analysis"
)

type SummarizeInput struct {
	URL       string `json:"url" jsonschema:"YouTube video URL"`
	Sentences int    `json:"sentences,omitempty" jsonschema:"Summary length in sentences, 3 to 10 (default 5)"`
}

type SummarizeOutput struct {
	VideoID   string `json:"video_id"`
	Summary   string `json:"summary"`
	Method    string `json:"method"`
	Sentences int    `json:"sentences"`
}

func registerSummarize(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_summarize",
		Description: "Summarize a video's transcript. Uses the configured LLM when available, otherwise an extractive word-frequency summary that keeps the highest scoring sentences in their original order.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, SummarizeOutput, error) {
		out, err := svc.Summarize(ctx, input)
		return nil, out, err
	})
}

// Summarize summarizes the plain transcript.
func (s *Service) Summarize(ctx context.Context, input SummarizeInput) (SummarizeOutput, error) {
	rep, _, err := s.report(ctx, input.URL, false)
	if err != nil {
		return SummarizeOutput{}, err
	}
	summarizer := s.Summarizer
	if summarizer == nil {
		summarizer = &analysis.Summarizer{}
	}
	sum := summarizer.Summarize(ctx, rep.Result.PlainText, input.Sentences)
	return SummarizeOutput{
		VideoID:   rep.VideoID.String(),
		Summary:   sum.Text,
		Method:    sum.Method,
		Sentences: sum.Sentences,
	}, nil
}
