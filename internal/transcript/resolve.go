package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// referencePatterns are tried in order; the first capturing match wins,
// regardless of where in the input it occurs.
var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// idGrammar is the platform's identifier alphabet.
var idGrammar = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Resolve extracts the video identifier from a URL. No network access.
func Resolve(raw string) (VideoRef, error) {
	raw = strings.TrimSpace(raw)
	for _, re := range referencePatterns {
		m := re.FindStringSubmatch(raw)
		if len(m) < 2 {
			continue
		}
		if idGrammar.MatchString(m[1]) {
			return VideoRef(m[1]), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReference, raw)
}
