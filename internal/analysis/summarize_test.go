package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const catText = "Cats are great. Dogs bark loudly. Cats love cats. The sun is hot. Birds sing."

func TestSummarize(t *testing.T) {
	assert.Equal(t, "Cats are great. Cats love cats.", Summarize(catText, 2))
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	assert.Equal(t, catText, Summarize(catText, 5))
	assert.Equal(t, "", Summarize("", 5))
}

func TestSummarizeTiesKeepDocumentOrder(t *testing.T) {
	text := "alpha one. beta two. gamma three. delta four."
	assert.Equal(t, "alpha one. beta two.", Summarize(text, 2))
}

func TestSummarizeIgnoresStopWords(t *testing.T) {
	// "the" dominates raw frequency but carries no score.
	text := "the the the the. rocket launch. the the. rocket fuel."
	assert.Equal(t, "rocket launch. rocket fuel.", Summarize(text, 2))
}

func TestClampSentences(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 5}, {1, 3}, {-4, 3}, {3, 3}, {7, 7}, {10, 10}, {11, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampSentences(tt.in), "in=%d", tt.in)
	}
}

func TestSummarizerLLM(t *testing.T) {
	var gotPrompt string
	s := &Summarizer{LLM: func(_ context.Context, _, prompt string) (string, error) {
		gotPrompt = prompt
		return "  A short summary.  ", nil
	}}
	sum := s.Summarize(context.Background(), catText, 4)
	assert.Equal(t, Summary{Text: "A short summary.", Method: MethodLLM, Sentences: 4}, sum)
	assert.Contains(t, gotPrompt, "at most 4 sentences")
	assert.True(t, strings.HasSuffix(gotPrompt, catText))
}

func TestSummarizerFallsBack(t *testing.T) {
	s := &Summarizer{LLM: func(context.Context, string, string) (string, error) {
		return "", errors.New("rate limited")
	}}
	sum := s.Summarize(context.Background(), catText, 3)
	assert.Equal(t, MethodFrequency, sum.Method)
	assert.Equal(t, Summarize(catText, 3), sum.Text)

	plain := (&Summarizer{}).Summarize(context.Background(), catText, 0)
	assert.Equal(t, MethodFrequency, plain.Method)
	assert.Equal(t, DefaultSentences, plain.Sentences)
}
