package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	PipelineRuns       atomic.Int64
	PipelineSuccess    atomic.Int64
	NoTracks           atomic.Int64
	MetadataErrors     atomic.Int64
	PlatformRequests   atomic.Int64
	CaptionFetches     atomic.Int64
	CaptionFetchErrors atomic.Int64
	ParseFailures      atomic.Int64
	TranslateChunks    atomic.Int64
	TranslateDegraded  atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
}

var metricKeys = []string{
	"pipeline_runs", "pipeline_success", "no_tracks", "metadata_errors",
	"platform_requests", "caption_fetches", "caption_fetch_errors", "parse_failures",
	"translate_chunks", "translate_degraded",
	"llm_calls", "llm_errors",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"pipeline_runs":        metrics.PipelineRuns.Load(),
		"pipeline_success":     metrics.PipelineSuccess.Load(),
		"no_tracks":            metrics.NoTracks.Load(),
		"metadata_errors":      metrics.MetadataErrors.Load(),
		"platform_requests":    metrics.PlatformRequests.Load(),
		"caption_fetches":      metrics.CaptionFetches.Load(),
		"caption_fetch_errors": metrics.CaptionFetchErrors.Load(),
		"parse_failures":       metrics.ParseFailures.Load(),
		"translate_chunks":     metrics.TranslateChunks.Load(),
		"translate_degraded":   metrics.TranslateDegraded.Load(),
		"llm_calls":            metrics.LLMCalls.Load(),
		"llm_errors":           metrics.LLMErrors.Load(),
		"cache_hits":           hits,
		"cache_misses":         misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for transcript/ and platform/.
func IncrPipelineRuns()       { metrics.PipelineRuns.Add(1) }
func IncrPipelineSuccess()    { metrics.PipelineSuccess.Add(1) }
func IncrNoTracks()           { metrics.NoTracks.Add(1) }
func IncrMetadataErrors()     { metrics.MetadataErrors.Add(1) }
func IncrPlatformRequests()   { metrics.PlatformRequests.Add(1) }
func IncrCaptionFetches()     { metrics.CaptionFetches.Add(1) }
func IncrCaptionFetchErrors() { metrics.CaptionFetchErrors.Add(1) }
func IncrParseFailures()      { metrics.ParseFailures.Add(1) }

// Incrementors for translate/.
func IncrTranslateChunks()   { metrics.TranslateChunks.Add(1) }
func IncrTranslateDegraded() { metrics.TranslateDegraded.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
