package transcript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Fetcher downloads a caption file body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

// Candidate is one (track, encoding) pair the selector may try.
type Candidate struct {
	Language string
	Origin   Origin
	Encoding Encoding
}

// Selection is the winning candidate with its parsed segments.
type Selection struct {
	Candidate Candidate
	Document  RawCueDocument
	Segments  []Segment
}

// Candidates flattens a TrackSet into the order tracks are tried: manual
// before automatic, tracks in reported order, and within a track the
// encodings in VTT, SRT, TTML order. Unknown formats are never candidates.
func Candidates(ts TrackSet) []Candidate {
	var out []Candidate
	for _, group := range [][]CaptionTrack{ts.Manual, ts.Automatic} {
		for _, track := range group {
			for _, f := range formatPreference {
				for _, enc := range track.Encodings {
					if enc.Format == f && enc.URL != "" {
						out = append(out, Candidate{Language: track.Language, Origin: track.Origin, Encoding: enc})
						break
					}
				}
			}
		}
	}
	return out
}

// FirstSuccess calls try on each item in order and returns the first result
// without error. Failures go to onErr. When all fail it returns ErrNoTracks
// joined with the individual errors.
func FirstSuccess[C, R any](ctx context.Context, items []C, try func(context.Context, C) (R, error), onErr func(C, error)) (R, error) {
	var zero R
	var errs []error
	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		r, err := try(ctx, it)
		if err == nil {
			return r, nil
		}
		if onErr != nil {
			onErr(it, err)
		}
		errs = append(errs, err)
	}
	return zero, errors.Join(append([]error{ErrNoTracks}, errs...)...)
}

// SelectAndFetch downloads and parses candidates until one yields segments.
func SelectAndFetch(ctx context.Context, ts TrackSet, f Fetcher, logger *slog.Logger) (*Selection, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cands := Candidates(ts)
	if len(cands) == 0 {
		return nil, ErrNoTracks
	}
	return FirstSuccess(ctx, cands, func(ctx context.Context, c Candidate) (*Selection, error) {
		logger.Debug("transcript: trying track",
			slog.String("lang", c.Language), slog.String("origin", string(c.Origin)),
			slog.String("format", string(c.Encoding.Format)))
		engine.IncrCaptionFetches()
		body, err := f.Fetch(ctx, c.Encoding.URL)
		if err != nil {
			engine.IncrCaptionFetchErrors()
			return nil, &TrackFetchError{Language: c.Language, Origin: c.Origin, Format: c.Encoding.Format, Err: err}
		}
		doc := RawCueDocument{Format: c.Encoding.Format, Content: body}
		segs := Parse(doc)
		if len(segs) == 0 {
			engine.IncrParseFailures()
			return nil, &TrackFetchError{Language: c.Language, Origin: c.Origin, Format: c.Encoding.Format, Err: ErrParseFailure}
		}
		return &Selection{Candidate: c, Document: doc, Segments: segs}, nil
	}, func(c Candidate, err error) {
		logger.Warn("transcript: track failed, trying next",
			slog.String("lang", c.Language), slog.String("origin", string(c.Origin)),
			slog.String("format", string(c.Encoding.Format)), slog.Any("error", err))
	})
}

// Prefer returns a copy of ts where tracks whose language matches one of langs
// come first within each origin, in the order of langs. Other tracks keep
// their reported order. An empty langs leaves ts unchanged.
func Prefer(ts TrackSet, langs []string) TrackSet {
	if len(langs) == 0 {
		return ts
	}
	return TrackSet{Manual: preferTracks(ts.Manual, langs), Automatic: preferTracks(ts.Automatic, langs)}
}

func preferTracks(tracks []CaptionTrack, langs []string) []CaptionTrack {
	out := make([]CaptionTrack, 0, len(tracks))
	used := make([]bool, len(tracks))
	for _, lang := range langs {
		lang = strings.ToLower(strings.TrimSpace(lang))
		for i, t := range tracks {
			if !used[i] && strings.ToLower(t.Language) == lang {
				out = append(out, t)
				used[i] = true
			}
		}
	}
	for i, t := range tracks {
		if !used[i] {
			out = append(out, t)
		}
	}
	return out
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s/%s/%s", c.Origin, c.Language, c.Encoding.Format)
}
