package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{65, "01:05"},
		{3599, "59:59"},
		{3900, "65:00"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clock(tt.in))
	}
}

func TestFormat(t *testing.T) {
	segs := []Segment{
		{Start: 1, Text: "Hello world"},
		{Start: 65, Text: "second  segment here"},
		{Start: 70, Text: "   "},
	}
	plain, timed, words := FormatSegments(segs)
	assert.Equal(t, "Hello world second  segment here", plain)
	assert.Equal(t, "[00:01] Hello world\n\n[01:05] second  segment here\n\n", timed)
	assert.Equal(t, 5, words)
}

func TestFormatEmpty(t *testing.T) {
	plain, timed, words := FormatSegments(nil)
	assert.Empty(t, plain)
	assert.Empty(t, timed)
	assert.Zero(t, words)
}

func TestFormatWordCountMatchesSegments(t *testing.T) {
	segs := []Segment{
		{Start: 0, Text: "one"},
		{Start: 1, Text: "two three"},
		{Start: 2, Text: "four five six"},
	}
	_, _, words := FormatSegments(segs)
	sum := 0
	for _, s := range segs {
		sum += len(strings.Fields(s.Text))
	}
	assert.Equal(t, sum, words)
}

func TestParseTimedRoundTrip(t *testing.T) {
	segs := []Segment{
		{Start: 0, Text: "intro"},
		{Start: 61, Text: "middle part"},
		{Start: 3900, Text: "the end"},
	}
	_, timed, _ := FormatSegments(segs)
	assert.Equal(t, segs, parseTimed(timed))
}

// parseTimed recovers segments from a time-annotated view produced by Format.
func parseTimed(timed string) []Segment {
	segments := []Segment{}
	for _, line := range strings.Split(timed, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		clock, text, ok := strings.Cut(line[1:], "] ")
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		segments = append(segments, Segment{Start: ParseTimestamp(clock), Text: text})
	}
	return segments
}

func TestNewResult(t *testing.T) {
	r := NewResult([]Segment{{Start: 3, Text: "hi there"}}, "en", OriginManual, FormatVTT)
	assert.Equal(t, "hi there", r.PlainText)
	assert.Equal(t, "[00:03] hi there\n\n", r.TimedText)
	assert.Equal(t, 2, r.WordCount)
	assert.Equal(t, "en (manual)", r.Label())

	var nilResult *Result
	assert.Empty(t, nilResult.Label())
}
