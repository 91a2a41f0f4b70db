package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// Artifact is one export file.
type Artifact struct {
	Name    string
	Content []byte
}

// Artifacts lists the export files for a video. The translated file is only
// included when translated is non-empty; the report only when non-empty.
func Artifacts(videoID string, res *transcript.Result, translated, report string) []Artifact {
	var out []Artifact
	if res != nil {
		out = append(out,
			Artifact{Name: "transcript_" + videoID + ".txt", Content: []byte(res.PlainText)},
			Artifact{Name: "transcript_timed_" + videoID + ".txt", Content: []byte(res.TimedText)},
		)
	}
	if translated != "" {
		out = append(out, Artifact{Name: "transcript_translated_" + videoID + ".txt", Content: []byte(translated)})
	}
	if report != "" {
		out = append(out, Artifact{Name: "report_" + videoID + ".md", Content: []byte(report)})
	}
	return out
}

// WriteAll writes every artifact into dir and returns the written paths.
func WriteAll(dir string, arts []Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	paths := make([]string, 0, len(arts))
	for _, a := range arts {
		if a.Name != filepath.Base(a.Name) {
			return paths, fmt.Errorf("artifact name %q: must be a bare file name", a.Name)
		}
		p := filepath.Join(dir, a.Name)
		if err := writeFileAtomic(p, a.Content, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// writeFileAtomic writes to a temp file in the same directory, then renames.
func writeFileAtomic(dest string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	_ = os.Chmod(tmpName, perm)
	if err := os.Rename(tmpName, dest); err != nil {
		return fmt.Errorf("rename %s: %w", dest, err)
	}
	return nil
}
