// Package transcriptserver exposes the transcript pipeline and its text tools
// over MCP.
package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/analysis"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/translate"
)

// Service holds the collaborators every tool handler shares.
type Service struct {
	Pipeline   *transcript.Pipeline
	Translator *translate.Client
	Summarizer *analysis.Summarizer
	Store      *Store
	Stats      *Stats
	OutputDir  string
	Logger     *slog.Logger
}

// NewService wires a Service with fresh stats and a cache-backed store.
func NewService(p *transcript.Pipeline, tr *translate.Client, sum *analysis.Summarizer, outputDir string) *Service {
	return &Service{
		Pipeline:   p,
		Translator: tr,
		Summarizer: sum,
		Store:      &Store{},
		Stats:      NewStats(),
		OutputDir:  outputDir,
	}
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 8

// RegisterTools registers all transcript tools on the given MCP server:
// transcript_extract, transcript_search, transcript_translate,
// transcript_summarize, transcript_analyze, transcript_export,
// transcript_languages, usage_stats.
func RegisterTools(server *mcp.Server, svc *Service) {
	registerExtract(server, svc)
	registerSearch(server, svc)
	registerTranslate(server, svc)
	registerSummarize(server, svc)
	registerAnalyze(server, svc)
	registerExport(server, svc)
	registerLanguages(server)
	registerUsageStats(server, svc)
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// report returns the stored extraction for url, running the pipeline on a
// miss or when refresh is set. Stats are updated only after a fresh,
// successful run.
func (s *Service) report(ctx context.Context, url string, refresh bool) (*transcript.Report, bool, error) {
	ref, err := transcript.Resolve(url)
	if err != nil {
		return nil, false, userError(err)
	}
	if !refresh {
		if rep, ok := s.Store.Report(ctx, ref); ok {
			return rep, true, nil
		}
	}

	var rep *transcript.Report
	err = engine.TrackOperation(ctx, "transcript_extract", func(ctx context.Context) error {
		var runErr error
		rep, runErr = s.Pipeline.Run(ctx, url)
		return runErr
	})
	if err != nil {
		s.logger().Warn("extract failed", slog.String("video_id", ref.String()), slog.Any("error", err))
		return nil, false, userError(err)
	}

	s.Stats.Record(rep.Result.WordCount)
	s.Store.SaveReport(ctx, rep)
	return rep, false, nil
}

// userError turns terminal pipeline errors into actionable messages.
func userError(err error) error {
	switch {
	case errors.Is(err, transcript.ErrInvalidReference):
		return fmt.Errorf("%w; accepted forms: youtube.com/watch?v=ID, youtu.be/ID, youtube.com/embed/ID", err)
	case errors.Is(err, transcript.ErrNoTracks):
		return fmt.Errorf("%w: captions may be disabled for this video, try another video with subtitles", transcript.ErrNoTracks)
	}
	return err
}
