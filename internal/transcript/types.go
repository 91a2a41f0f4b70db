package transcript

import "strings"

// VideoRef is the platform's opaque video identifier.
type VideoRef string

func (r VideoRef) String() string { return string(r) }

// Origin tells whether a track was authored by a human or generated by ASR.
type Origin string

const (
	OriginManual    Origin = "manual"
	OriginAutomatic Origin = "automatic"
)

// Format is the on-disk encoding of a caption file.
type Format string

const (
	FormatVTT  Format = "vtt"
	FormatSRT  Format = "srt"
	FormatTTML Format = "ttml"
)

// formatPreference is the order encodings are tried within one track.
var formatPreference = []Format{FormatVTT, FormatSRT, FormatTTML}

// ParseFormat maps a file extension (as reported by the platform) to a Format.
func ParseFormat(ext string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))) {
	case FormatVTT:
		return FormatVTT, true
	case FormatSRT:
		return FormatSRT, true
	case FormatTTML:
		return FormatTTML, true
	}
	return "", false
}

// Encoding is one downloadable variant of a track.
type Encoding struct {
	Format Format `json:"format"`
	URL    string `json:"url"`
}

// CaptionTrack describes one available caption track. Platform clients only
// produce tracks with at least one encoding.
type CaptionTrack struct {
	Language  string     `json:"language"`
	Origin    Origin     `json:"origin"`
	Encodings []Encoding `json:"encodings"`
}

// TrackSet is the partitioned list of tracks, each slice in the order the
// platform reported them.
type TrackSet struct {
	Manual    []CaptionTrack `json:"manual"`
	Automatic []CaptionTrack `json:"automatic"`
}

// Empty reports whether the platform offered no captions at all.
func (ts TrackSet) Empty() bool {
	return len(ts.Manual) == 0 && len(ts.Automatic) == 0
}

// RawCueDocument is an unparsed caption file.
type RawCueDocument struct {
	Format  Format
	Content string
}

// Segment is the canonical output unit: a start offset and cleaned text.
type Segment struct {
	Start int    `json:"start"`
	Text  string `json:"text"`
}

// Result is the pipeline's output artifact.
type Result struct {
	Segments  []Segment `json:"segments"`
	Language  string    `json:"language"`
	Origin    Origin    `json:"origin"`
	Format    Format    `json:"format"`
	PlainText string    `json:"plain_text"`
	TimedText string    `json:"timed_text"`
	WordCount int       `json:"word_count"`
}

// Label renders the language and origin, e.g. "en (manual)".
func (r *Result) Label() string {
	if r == nil || r.Language == "" {
		return ""
	}
	return r.Language + " (" + string(r.Origin) + ")"
}

// Metadata holds descriptive fields used for display and export headers.
type Metadata struct {
	Title           string `json:"title"`
	Uploader        string `json:"uploader"`
	DurationSeconds int    `json:"duration_seconds"`
	ViewCount       int64  `json:"view_count"`
	UploadDate      string `json:"upload_date"`
	Description     string `json:"description"`
}
