package analysis

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// MaxMatches caps the number of search results.
const MaxMatches = 20

// NoTime is the time label for matches found without segment timing.
const NoTime = "--:--"

// Match is one search hit.
type Match struct {
	Time      string `json:"time"`
	Text      string `json:"text"`
	Timestamp int    `json:"timestamp"`
}

// Search finds case-insensitive occurrences of query. With segments it
// matches per segment and reports each segment's time; otherwise it matches
// per sentence of plain. Every query word is wrapped in **...** in the result.
func Search(segments []transcript.Segment, plain, query string) []Match {
	if strings.TrimSpace(query) == "" {
		return []Match{}
	}
	needle := strings.ToLower(query)
	hl := highlighter(query)

	out := []Match{}
	if len(segments) > 0 {
		for _, seg := range segments {
			if !strings.Contains(strings.ToLower(seg.Text), needle) {
				continue
			}
			out = append(out, Match{Time: transcript.Clock(seg.Start), Text: hl(seg.Text), Timestamp: seg.Start})
			if len(out) == MaxMatches {
				break
			}
		}
		return out
	}

	for _, s := range sentenceSplitRe.Split(plain, -1) {
		if !strings.Contains(strings.ToLower(s), needle) {
			continue
		}
		out = append(out, Match{Time: NoTime, Text: hl(strings.TrimSpace(s))})
		if len(out) == MaxMatches {
			break
		}
	}
	return out
}

// highlighter wraps each whitespace-separated query word, applied in order.
func highlighter(query string) func(string) string {
	var res []*regexp.Regexp
	for _, w := range strings.Fields(query) {
		res = append(res, regexp.MustCompile(`(?i)(`+regexp.QuoteMeta(w)+`)`))
	}
	return func(s string) string {
		for _, re := range res {
			s = re.ReplaceAllString(s, "**${1}**")
		}
		return s
	}
}
