package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Summary sentence bounds.
const (
	DefaultSentences = 5
	MinSentences     = 3
	MaxSentences     = 10
)

// fallbackRunes is the prefix length used when no sentences can be scored.
const fallbackRunes = 500

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true, "can": true, "this": true,
	"that": true, "these": true, "those": true,
}

// ClampSentences bounds a requested sentence count; zero means the default.
func ClampSentences(n int) int {
	switch {
	case n == 0:
		return DefaultSentences
	case n < MinSentences:
		return MinSentences
	case n > MaxSentences:
		return MaxSentences
	}
	return n
}

// Summarize is an extractive frequency summarizer. Sentences are scored by
// the summed corpus frequency of their non-stop words; the n best are kept
// in document order. Text with n or fewer sentences is returned unchanged.
func Summarize(text string, n int) string {
	if n <= 0 {
		n = DefaultSentences
	}
	sents := sentences(text)
	if len(sents) <= n {
		return text
	}

	freq := make(map[string]int)
	for _, w := range words(strings.ToLower(text)) {
		freq[w]++
	}

	type scored struct {
		sentence string
		score    int
	}
	var ranked []scored
	seen := make(map[string]bool)
	for _, s := range sents {
		if seen[s] {
			continue
		}
		seen[s] = true
		score := 0
		for _, w := range words(strings.ToLower(s)) {
			if !stopWords[w] {
				score += freq[w]
			}
		}
		ranked = append(ranked, scored{s, score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	top := make(map[string]bool, len(ranked))
	for _, r := range ranked {
		top[r.sentence] = true
	}

	var picked []string
	for _, s := range sents {
		if top[s] {
			picked = append(picked, s)
			if len(picked) == n {
				break
			}
		}
	}
	if len(picked) == 0 {
		return fallbackSummary(text)
	}
	return strings.Join(picked, ". ") + "."
}

func fallbackSummary(text string) string {
	return engine.TruncateRunes(text, fallbackRunes, "") + "..."
}

// Summary methods.
const (
	MethodFrequency = "frequency"
	MethodLLM       = "llm"
)

// Summary is a summarizer result.
type Summary struct {
	Text      string `json:"text"`
	Method    string `json:"method"`
	Sentences int    `json:"sentences"`
}

// CompleteFunc sends a prompt to a language model.
type CompleteFunc func(ctx context.Context, system, prompt string) (string, error)

// Summarizer prefers an LLM when one is set and falls back to Summarize.
type Summarizer struct {
	LLM CompleteFunc
	// MaxInputRunes caps the text sent to the LLM.
	MaxInputRunes int
	Logger        *slog.Logger
}

// NewSummarizer wires the engine's LLM client when configured.
func NewSummarizer() *Summarizer {
	s := &Summarizer{MaxInputRunes: 12000}
	if engine.LLMEnabled() {
		s.LLM = engine.CallLLM
	}
	return s
}

const summarySystemPrompt = "You summarize video transcripts. Reply with plain prose only, no headings, no lists."

// Summarize returns an n-sentence summary. n is clamped to the allowed range.
func (s *Summarizer) Summarize(ctx context.Context, text string, n int) Summary {
	n = ClampSentences(n)
	if s.LLM != nil && strings.TrimSpace(text) != "" {
		limit := s.MaxInputRunes
		if limit <= 0 {
			limit = 12000
		}
		prompt := fmt.Sprintf("Summarize the following transcript in at most %d sentences, in the transcript's language.\n\n%s",
			n, engine.TruncateAtWord(text, limit))
		out, err := s.LLM(ctx, summarySystemPrompt, prompt)
		if err == nil && strings.TrimSpace(out) != "" {
			return Summary{Text: strings.TrimSpace(out), Method: MethodLLM, Sentences: n}
		}
		logger := s.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("summarize: llm failed, using frequency summary", slog.Any("error", err))
	}
	return Summary{Text: Summarize(text, n), Method: MethodFrequency, Sentences: n}
}
