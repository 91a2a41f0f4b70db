package transcriptserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/analysis"
)

type SearchInput struct {
	URL   string `json:"url" jsonschema:"YouTube video URL"`
	Query string `json:"query" jsonschema:"Text to find (case-insensitive); each word is highlighted with **bold**"`
}

type SearchOutput struct {
	VideoID string           `json:"video_id"`
	Query   string           `json:"query"`
	Count   int              `json:"count"`
	Matches []analysis.Match `json:"matches"`
}

func registerSearch(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_search",
		Description: "Search a video's transcript. Returns up to 20 matching segments with their MM:SS time and the query words highlighted.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		out, err := svc.Search(ctx, input)
		return nil, out, err
	})
}

// Search looks for input.Query in the video's segments.
func (s *Service) Search(ctx context.Context, input SearchInput) (SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return SearchOutput{}, errors.New("query is required")
	}
	rep, _, err := s.report(ctx, input.URL, false)
	if err != nil {
		return SearchOutput{}, err
	}
	matches := analysis.Search(rep.Result.Segments, rep.Result.PlainText, input.Query)
	return SearchOutput{
		VideoID: rep.VideoID.String(),
		Query:   input.Query,
		Count:   len(matches),
		Matches: matches,
	}, nil
}
