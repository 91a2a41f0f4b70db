// Package platform lists caption tracks and video metadata from the hosting
// platform. Two backends exist: the yt-dlp CLI and the Innertube HTTP API.
package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// Backend names accepted by New.
const (
	BackendAuto      = "auto"
	BackendYtDlp     = "ytdlp"
	BackendInnertube = "innertube"
)

// ErrUnknownBackend is returned by New for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown platform backend")

// Options are shared by both backends.
type Options struct {
	Languages        []string
	IncludeAutomatic bool
	UserAgent        string
	GeoBypass        bool
}

// New picks a backend. "auto" uses yt-dlp when the binary resolves on PATH
// and falls back to Innertube otherwise.
func New(backend, ytdlpPath string, opts Options) (transcript.Platform, error) {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendYtDlp:
		return NewYtDlp(ytdlpPath, opts), nil
	case BackendInnertube:
		return NewInnertube(opts), nil
	case "", BackendAuto:
		if resolved, err := exec.LookPath(ytdlpPath); err == nil {
			slog.Info("platform: using yt-dlp", slog.String("path", resolved))
			return NewYtDlp(resolved, opts), nil
		}
		slog.Info("platform: yt-dlp not found, using innertube", slog.String("path", ytdlpPath))
		return NewInnertube(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// watchURL is the canonical page URL for a video.
func watchURL(ref transcript.VideoRef) string {
	return "https://www.youtube.com/watch?v=" + ref.String()
}

// compactDate turns "2009-10-24" or an RFC 3339 timestamp into "20091024".
func compactDate(s string) string {
	if len(s) < 10 {
		return ""
	}
	return strings.ReplaceAll(s[:10], "-", "")
}
