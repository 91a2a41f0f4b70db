// Package report renders the Markdown report and the plain-text export
// artifacts for one extracted transcript.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/anatolykoptev/go_transcript/internal/analysis"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// NA is printed for any value that is not available.
const NA = "N/A"

// Footer closes every report.
const Footer = "Generated by go-transcript, a free tool for extracting and analyzing video transcripts."

// Input is everything a report can show. Only VideoID is required.
type Input struct {
	VideoID     string
	Metadata    *transcript.Metadata
	Result      *transcript.Result
	Stats       *analysis.Stats
	GeneratedAt time.Time
}

type frontMatter struct {
	VideoID     string `yaml:"video_id"`
	Title       string `yaml:"title,omitempty"`
	Uploader    string `yaml:"uploader,omitempty"`
	Language    string `yaml:"language,omitempty"`
	Origin      string `yaml:"origin,omitempty"`
	Format      string `yaml:"format,omitempty"`
	WordCount   int    `yaml:"word_count"`
	UploadDate  string `yaml:"upload_date,omitempty"`
	GeneratedAt string `yaml:"generated_at"`
}

// Render builds the Markdown report.
func Render(in Input) string {
	at := in.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}

	var sb strings.Builder
	writeFrontMatter(&sb, in, at)

	sb.WriteString("# Transcript Report\n\n")

	sb.WriteString("## Video Information\n\n")
	m := in.Metadata
	if m == nil {
		m = &transcript.Metadata{}
	}
	fmt.Fprintf(&sb, "- **Title:** %s\n", orNA(m.Title))
	fmt.Fprintf(&sb, "- **Channel:** %s\n", orNA(m.Uploader))
	fmt.Fprintf(&sb, "- **Duration:** %s\n", duration(m.DurationSeconds))
	fmt.Fprintf(&sb, "- **Views:** %s\n", views(in.Metadata))
	fmt.Fprintf(&sb, "- **Upload date:** %s\n", orNA(uploadDate(m.UploadDate)))
	fmt.Fprintf(&sb, "- **Language:** %s\n", orNA(in.Result.Label()))
	fmt.Fprintf(&sb, "- **Extracted:** %s\n\n", at.Format("2006-01-02 15:04:05"))

	sb.WriteString("## Text Statistics\n\n")
	if st := in.Stats; st != nil {
		fmt.Fprintf(&sb, "- **Total words:** %s\n", humanize.Comma(int64(st.TotalWords)))
		fmt.Fprintf(&sb, "- **Total sentences:** %s\n", humanize.Comma(int64(st.TotalSentences)))
		fmt.Fprintf(&sb, "- **Unique words:** %s\n", humanize.Comma(int64(st.UniqueWords)))
		fmt.Fprintf(&sb, "- **Estimated reading time:** %.1f minutes\n", st.ReadingTimeMinutes)
		fmt.Fprintf(&sb, "- **Average sentence length:** %.1f words\n", st.AvgSentenceLength)
		fmt.Fprintf(&sb, "- **Difficulty:** %s\n\n", st.Difficulty)

		sb.WriteString("### Top Words\n\n")
		if len(st.TopWords) == 0 {
			sb.WriteString(NA + "\n")
		}
		for _, wc := range st.TopWords {
			fmt.Fprintf(&sb, "- %s: %s times\n", wc.Word, humanize.Comma(int64(wc.Count)))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString(NA + "\n\n")
	}

	plain, timed := NA, NA
	if in.Result != nil {
		if in.Result.PlainText != "" {
			plain = in.Result.PlainText
		}
		if in.Result.TimedText != "" {
			timed = strings.TrimRight(in.Result.TimedText, "\n")
		}
	}
	fmt.Fprintf(&sb, "## Full Text\n\n%s\n\n", plain)
	fmt.Fprintf(&sb, "## Timestamped Text\n\n%s\n\n", timed)

	sb.WriteString("---\n\n")
	sb.WriteString(Footer + "\n")
	return sb.String()
}

func writeFrontMatter(sb *strings.Builder, in Input, at time.Time) {
	fm := frontMatter{VideoID: in.VideoID, GeneratedAt: at.UTC().Format(time.RFC3339)}
	if m := in.Metadata; m != nil {
		fm.Title, fm.Uploader, fm.UploadDate = m.Title, m.Uploader, uploadDate(m.UploadDate)
	}
	if r := in.Result; r != nil {
		fm.Language, fm.Origin, fm.Format, fm.WordCount = r.Language, string(r.Origin), string(r.Format), r.WordCount
	}
	out, err := yaml.Marshal(fm)
	if err != nil {
		return
	}
	sb.WriteString("---\n")
	sb.Write(out)
	sb.WriteString("---\n\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}

// duration prints whole minutes, with seconds for clips under a minute.
func duration(seconds int) string {
	switch {
	case seconds <= 0:
		return NA
	case seconds < 60:
		return fmt.Sprintf("%d seconds", seconds)
	}
	return fmt.Sprintf("%d minutes", seconds/60)
}

func views(m *transcript.Metadata) string {
	if m == nil {
		return NA
	}
	return humanize.Comma(m.ViewCount)
}

// uploadDate turns YYYYMMDD into YYYY-MM-DD; other inputs pass through.
func uploadDate(s string) string {
	if t, err := time.Parse("20060102", s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}
