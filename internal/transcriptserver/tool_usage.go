package transcriptserver

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

type UsageStatsInput struct {
	Reset bool `json:"reset,omitempty" jsonschema:"Zero the counters after reading them"`
}

type UsageStatsOutput struct {
	VideosProcessed    int64            `json:"videos_processed"`
	WordsExtracted     int64            `json:"words_extracted"`
	WordsExtractedText string           `json:"words_extracted_text"`
	Since              string           `json:"since"`
	Reset              bool             `json:"reset"`
	Metrics            map[string]int64 `json:"metrics"`
}

func registerUsageStats(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "usage_stats",
		Description: "Videos processed and words extracted since start or the last reset, plus engine counters. Set reset=true to zero the usage counters.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input UsageStatsInput) (*mcp.CallToolResult, UsageStatsOutput, error) {
		return nil, svc.UsageStats(input), nil
	})
}

// UsageStats reports, and optionally resets, the usage counters.
func (s *Service) UsageStats(input UsageStatsInput) UsageStatsOutput {
	snap := s.Stats.Snapshot()
	if input.Reset {
		s.Stats.Reset()
	}
	return UsageStatsOutput{
		VideosProcessed:    snap.VideosProcessed,
		WordsExtracted:     snap.WordsExtracted,
		WordsExtractedText: humanize.Comma(snap.WordsExtracted),
		Since:              humanize.Time(snap.Since),
		Reset:              input.Reset,
		Metrics:            engine.GetMetrics(),
	}
}
