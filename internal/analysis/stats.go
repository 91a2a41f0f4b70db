package analysis

import (
	"math"
	"strings"
)

// WordsPerMinute is the reading speed used for reading time.
const WordsPerMinute = 200

// Difficulty labels, by average sentence length.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Stats describes a text.
type Stats struct {
	TotalWords         int         `json:"total_words"`
	TotalSentences     int         `json:"total_sentences"`
	TotalParagraphs    int         `json:"total_paragraphs"`
	ReadingTimeMinutes float64     `json:"reading_time_minutes"`
	AvgSentenceLength  float64     `json:"avg_sentence_length"`
	TopWords           []WordCount `json:"top_words"`
	UniqueWords        int         `json:"unique_words"`
	UniqueRatio        float64     `json:"unique_ratio"`
	Difficulty         string      `json:"difficulty"`
}

// Analyze computes Stats. Top words only count words longer than three
// characters, case-folded.
func Analyze(text string) *Stats {
	ws := words(text)
	sents := sentences(text)

	paragraphs := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	var long []string
	unique := make(map[string]struct{})
	for _, w := range ws {
		lw := strings.ToLower(w)
		unique[lw] = struct{}{}
		if len([]rune(w)) > 3 {
			long = append(long, lw)
		}
	}

	totalLen := 0
	for _, s := range sents {
		totalLen += len(strings.Fields(s))
	}
	avg := 0.0
	if len(sents) > 0 {
		avg = float64(totalLen) / float64(len(sents))
	}
	ratio := 0.0
	if len(ws) > 0 {
		ratio = float64(len(unique)) / float64(len(ws))
	}

	return &Stats{
		TotalWords:         len(ws),
		TotalSentences:     len(sents),
		TotalParagraphs:    paragraphs,
		ReadingTimeMinutes: round1(float64(len(ws)) / WordsPerMinute),
		AvgSentenceLength:  round1(avg),
		TopWords:           mostCommon(long, 10),
		UniqueWords:        len(unique),
		UniqueRatio:        math.Round(ratio*1000) / 1000,
		Difficulty:         difficulty(avg),
	}
}

func difficulty(avgSentenceLength float64) string {
	switch {
	case avgSentenceLength > 20:
		return DifficultyHard
	case avgSentenceLength > 15:
		return DifficultyMedium
	}
	return DifficultyEasy
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
