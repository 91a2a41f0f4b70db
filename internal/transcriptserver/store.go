package transcriptserver

import (
	"context"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/translate"
)

// Store keeps extraction reports and translations in the engine cache so
// follow-up tools on the same video skip the pipeline. With no cache
// configured every lookup misses.
type Store struct{}

func reportKey(ref transcript.VideoRef) string {
	return engine.CacheKey("report", ref.String())
}

func translationKey(ref transcript.VideoRef, target string) string {
	return engine.CacheKey("translation", ref.String(), target)
}

func lastTranslationKey(ref transcript.VideoRef) string {
	return engine.CacheKey("translation_last", ref.String())
}

// Report returns the stored report for ref.
func (*Store) Report(ctx context.Context, ref transcript.VideoRef) (*transcript.Report, bool) {
	rep, ok := toolutil.CacheLoadJSON[*transcript.Report](ctx, reportKey(ref))
	if !ok || rep == nil || rep.Result == nil {
		return nil, false
	}
	return rep, true
}

// SaveReport stores rep under its video ID.
func (*Store) SaveReport(ctx context.Context, rep *transcript.Report) {
	toolutil.CacheStoreJSON(ctx, reportKey(rep.VideoID), rep)
}

// SaveTranslation stores res and remembers it as the video's latest translation.
func (*Store) SaveTranslation(ctx context.Context, ref transcript.VideoRef, res *translate.Result) {
	toolutil.CacheStoreJSON(ctx, translationKey(ref, res.Target), res)
	toolutil.CacheStoreJSON(ctx, lastTranslationKey(ref), res.Target)
}

// Translation returns the stored translation into target. An empty target
// means the latest translation of any language.
func (s *Store) Translation(ctx context.Context, ref transcript.VideoRef, target string) (*translate.Result, bool) {
	if target == "" {
		last, ok := toolutil.CacheLoadJSON[string](ctx, lastTranslationKey(ref))
		if !ok {
			return nil, false
		}
		target = last
	}
	res, ok := toolutil.CacheLoadJSON[*translate.Result](ctx, translationKey(ref, target))
	if !ok || res == nil {
		return nil, false
	}
	return res, true
}
