package transcript

import (
	"fmt"
	"strings"
)

// Clock renders seconds as MM:SS. Hours fold into minutes, so 3900 is "65:00".
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatSegments folds segments into the plain view, the time-annotated view and a
// word count summed per segment.
func FormatSegments(segments []Segment) (plain, timed string, words int) {
	var pb, tb strings.Builder
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		pb.WriteString(text)
		pb.WriteByte(' ')
		words += len(strings.Fields(text))
		fmt.Fprintf(&tb, "[%s] %s\n\n", Clock(seg.Start), text)
	}
	return strings.TrimSpace(pb.String()), tb.String(), words
}

// NewResult builds a Result from parsed segments.
func NewResult(segments []Segment, lang string, origin Origin, format Format) *Result {
	plain, timed, words := FormatSegments(segments)
	return &Result{
		Segments:  segments,
		Language:  lang,
		Origin:    origin,
		Format:    format,
		PlainText: plain,
		TimedText: timed,
		WordCount: words,
	}
}
