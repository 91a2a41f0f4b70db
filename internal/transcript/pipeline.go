package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Platform is the hosting-platform collaborator.
type Platform interface {
	Metadata(ctx context.Context, ref VideoRef) (*Metadata, error)
	Tracks(ctx context.Context, ref VideoRef) (TrackSet, error)
}

// Report bundles one run's output. Metadata is nil when the metadata query
// failed; MetadataErr then explains why.
type Report struct {
	VideoID     VideoRef  `json:"video_id"`
	Metadata    *Metadata `json:"metadata,omitempty"`
	MetadataErr string    `json:"metadata_error,omitempty"`
	Result      *Result   `json:"result"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// Pipeline runs resolve, metadata, track listing, selection and formatting
// sequentially for one request.
type Pipeline struct {
	Platform Platform
	Fetcher  Fetcher
	Logger   *slog.Logger
	// Prefer moves these languages to the front of each origin group.
	Prefer []string
}

// Run executes the pipeline for a raw URL. Only ErrInvalidReference and
// ErrNoTracks (or a track listing failure) abort the run.
func (p *Pipeline) Run(ctx context.Context, raw string) (*Report, error) {
	engine.IncrPipelineRuns()

	ref, err := Resolve(raw)
	if err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("run_id", uuid.NewString()), slog.String("video_id", ref.String()))

	rep := &Report{VideoID: ref, ExtractedAt: time.Now().UTC()}

	meta, err := p.Platform.Metadata(ctx, ref)
	if err != nil {
		engine.IncrMetadataErrors()
		rep.MetadataErr = fmt.Errorf("%w: %v", ErrMetadataUnavailable, err).Error()
		logger.Warn("transcript: metadata unavailable, continuing", slog.Any("error", err))
	} else {
		rep.Metadata = meta
	}

	tracks, err := p.Platform.Tracks(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	logger.Info("transcript: tracks listed",
		slog.Int("manual", len(tracks.Manual)), slog.Int("automatic", len(tracks.Automatic)))

	if tracks.Empty() {
		engine.IncrNoTracks()
		return nil, ErrNoTracks
	}

	sel, err := SelectAndFetch(ctx, Prefer(tracks, p.Prefer), p.Fetcher, logger)
	if err != nil {
		if errors.Is(err, ErrNoTracks) {
			engine.IncrNoTracks()
		}
		return nil, err
	}

	c := sel.Candidate
	rep.Result = NewResult(sel.Segments, c.Language, c.Origin, c.Encoding.Format)
	engine.IncrPipelineSuccess()
	logger.Info("transcript: extracted",
		slog.String("lang", c.Language), slog.String("origin", string(c.Origin)),
		slog.Int("segments", len(sel.Segments)), slog.Int("words", rep.Result.WordCount))
	return rep, nil
}
