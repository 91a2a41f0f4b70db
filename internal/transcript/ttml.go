package transcript

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// parseTTML walks <p begin="..."> cues. A <br> inside a cue starts a new
// line, and each line becomes its own segment, matching the line-based formats.
func parseTTML(content string) []Segment {
	segments := []Segment{}
	// Styling in <head> uses <style/>, which the tokenizer reads as raw text.
	if i := strings.Index(content, "<body"); i >= 0 {
		content = content[i:]
	}
	z := html.NewTokenizer(strings.NewReader(content))

	var (
		inCue bool
		start int
		line  strings.Builder
	)
	flush := func() {
		if text := CleanCueText(line.String()); text != "" {
			segments = append(segments, Segment{Start: start, Text: text})
		}
		line.Reset()
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if inCue {
				flush()
			}
			return segments
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "p":
				if inCue {
					flush()
				}
				inCue, start = true, 0
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					if string(key) == "begin" {
						start = parseClockValue(string(val))
					}
				}
			case "br":
				if inCue {
					flush()
				}
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "p" && inCue {
				flush()
				inCue = false
			}
		case html.TextToken:
			if inCue {
				line.Write(z.Raw())
			}
		}
	}
}

// parseClockValue handles TTML time expressions: clock time ("00:01:02.500",
// optionally with a frames field) and offset time ("62.5s", "1500ms", "2m", "1h").
func parseClockValue(v string) int {
	v = strings.TrimSpace(v)
	if strings.Contains(v, ":") {
		if strings.Count(v, ":") == 3 {
			v = v[:strings.LastIndex(v, ":")]
		}
		return ParseTimestamp(v)
	}
	units := []struct {
		suffix string
		scale  float64
	}{
		{"ms", 0.001},
		{"h", 3600},
		{"m", 60},
		{"s", 1},
	}
	for _, u := range units {
		if num, ok := strings.CutSuffix(v, u.suffix); ok {
			f, err := strconv.ParseFloat(num, 64)
			if err != nil || f < 0 {
				return 0
			}
			return int(f * u.scale)
		}
	}
	return 0
}
