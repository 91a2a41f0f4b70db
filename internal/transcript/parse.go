package transcript

import (
	"html"
	"strconv"
	"strings"
	"unicode"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// timingSeparator splits a cue timing line into start and end.
const timingSeparator = "-->"

// headerPrefixes mark format banners and comment blocks.
var headerPrefixes = []string{"WEBVTT", "NOTE"}

// cueMode is the parser's position relative to the last timing line.
type cueMode int

const (
	seeking       cueMode = iota // before the first timing line
	expectingText                // a timing line was consumed
)

// cueState is the state carried between lines.
type cueState struct {
	mode   cueMode
	offset int
}

// next consumes one raw line and returns the new state plus the segment the
// line produced, if any.
func (s cueState) next(line string) (cueState, *Segment) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return s, nil
	case isHeader(line):
		return s, nil
	case strings.Contains(line, timingSeparator):
		start, _, _ := strings.Cut(line, timingSeparator)
		return cueState{mode: expectingText, offset: ParseTimestamp(start)}, nil
	case s.mode != expectingText:
		return s, nil
	case isNumeric(line):
		return s, nil
	}
	text := CleanCueText(line)
	if text == "" {
		return s, nil
	}
	return s, &Segment{Start: s.offset, Text: text}
}

// Parse turns a caption document into segments. Each non-empty text line
// after a timing line becomes its own segment; lines of one cue are not merged.
// An empty or unrecognizable document yields an empty slice.
func Parse(doc RawCueDocument) []Segment {
	if doc.Format == FormatTTML {
		return parseTTML(doc.Content)
	}
	return parseLines(doc.Content)
}

func parseLines(content string) []Segment {
	segments := []Segment{}
	var st cueState
	for _, line := range strings.Split(content, "\n") {
		var seg *Segment
		st, seg = st.next(line)
		if seg != nil {
			segments = append(segments, *seg)
		}
	}
	return segments
}

// ParseTimestamp converts a cue start time to whole seconds. Sub-second parts
// are dropped; "H:M:S" and "M:S" are accepted and anything else yields 0.
func ParseTimestamp(ts string) int {
	ts = strings.TrimSpace(ts)
	if i := strings.IndexAny(ts, ".,"); i >= 0 {
		ts = ts[:i]
	}
	parts := strings.Split(ts, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		nums[i] = n
	}
	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	case 2:
		return nums[0]*60 + nums[1]
	}
	return 0
}

// CleanCueText unescapes entities, strips markup tags and collapses whitespace.
func CleanCueText(s string) string {
	s = engine.CleanHTML(html.UnescapeString(s))
	return strings.Join(strings.Fields(s), " ")
}

func isHeader(line string) bool {
	for _, p := range headerPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func isNumeric(line string) bool {
	for _, r := range line {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return line != ""
}
