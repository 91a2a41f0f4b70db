// Package analysis implements search, summaries and statistics over a
// transcript's text.
package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// wordRe matches a run of letters, digits or underscores in any script.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// sentenceSplitRe splits on runs of terminal punctuation.
var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

func words(s string) []string {
	return wordRe.FindAllString(s, -1)
}

// sentences splits text on terminal punctuation, dropping blank pieces.
func sentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WordCount is one entry of a frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// mostCommon returns the n most frequent words. Ties keep first-occurrence order.
func mostCommon(ws []string, n int) []WordCount {
	counts := make(map[string]int)
	var order []string
	for _, w := range ws {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	out := make([]WordCount, 0, len(order))
	for _, w := range order {
		out = append(out, WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
