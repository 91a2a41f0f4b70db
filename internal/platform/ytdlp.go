package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// YtDlp lists tracks and metadata by dumping yt-dlp's info JSON.
type YtDlp struct {
	Path string
	Opts Options
	Run  Runner
}

// NewYtDlp returns a client that runs the binary at path.
func NewYtDlp(path string, opts Options) *YtDlp {
	return &YtDlp{Path: path, Opts: opts, Run: execRunner}
}

// ytdlpInfo is the subset of the info dict we read.
type ytdlpInfo struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Uploader          string      `json:"uploader"`
	Duration          float64     `json:"duration"`
	ViewCount         int64       `json:"view_count"`
	UploadDate        string      `json:"upload_date"`
	Description       string      `json:"description"`
	Subtitles         orderedSubs `json:"subtitles"`
	AutomaticCaptions orderedSubs `json:"automatic_captions"`
}

type subtitleItem struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

type langEntry struct {
	Lang  string
	Items []subtitleItem
}

// orderedSubs decodes a {lang: [items]} object keeping key order, which
// decides the order tracks are tried.
type orderedSubs []langEntry

func (o *orderedSubs) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("subtitles: expected object, got %v", tok)
	}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		lang, _ := kt.(string)
		var items []subtitleItem
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("subtitles[%s]: %w", lang, err)
		}
		*o = append(*o, langEntry{Lang: lang, Items: items})
	}
	_, err = dec.Token()
	return err
}

// Args builds the yt-dlp command line for one URL.
func (y *YtDlp) Args(url string) []string {
	args := []string{"-J", "--skip-download", "--no-warnings", "--no-config", "--write-subs"}
	if langs := engine.NormLangs(y.Opts.Languages); len(langs) > 0 {
		args = append(args, "--sub-langs", strings.Join(langs, ","))
	}
	if y.Opts.IncludeAutomatic {
		args = append(args, "--write-auto-subs")
	}
	if y.Opts.UserAgent != "" {
		args = append(args, "--user-agent", y.Opts.UserAgent)
	}
	if y.Opts.GeoBypass {
		args = append(args, "--geo-bypass")
	}
	return append(args, url)
}

// dump runs yt-dlp once per video and caches the JSON for the
// metadata and track queries that follow.
func (y *YtDlp) dump(ctx context.Context, ref transcript.VideoRef) (*ytdlpInfo, error) {
	key := engine.CacheKey("ytdlp", ref.String())
	raw, ok := engine.CacheGet(ctx, key)
	if !ok {
		engine.IncrPlatformRequests()
		run := y.Run
		if run == nil {
			run = execRunner
		}
		out, err := run(ctx, y.Path, y.Args(watchURL(ref))...)
		if err != nil {
			return nil, fmt.Errorf("yt-dlp: %w: %s", err, engine.TruncateRunes(strings.TrimSpace(string(out)), 300, "..."))
		}
		raw = jsonLine(out)
		if raw == nil {
			return nil, errors.New("yt-dlp: no JSON in output")
		}
		engine.CacheSet(ctx, key, raw)
	} else {
		slog.Debug("ytdlp: cached info", slog.String("video_id", ref.String()))
	}

	var info ytdlpInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("yt-dlp: decode info: %w", err)
	}
	return &info, nil
}

// jsonLine returns the last line of output that looks like a JSON object.
// Anything else is a warning line.
func jsonLine(out []byte) []byte {
	var found []byte
	for _, line := range bytes.Split(out, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte("{")) {
			found = line
		}
	}
	return found
}

// Metadata implements transcript.Platform.
func (y *YtDlp) Metadata(ctx context.Context, ref transcript.VideoRef) (*transcript.Metadata, error) {
	info, err := y.dump(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &transcript.Metadata{
		Title:           info.Title,
		Uploader:        info.Uploader,
		DurationSeconds: int(info.Duration),
		ViewCount:       info.ViewCount,
		UploadDate:      info.UploadDate,
		Description:     info.Description,
	}, nil
}

// Tracks implements transcript.Platform.
func (y *YtDlp) Tracks(ctx context.Context, ref transcript.VideoRef) (transcript.TrackSet, error) {
	info, err := y.dump(ctx, ref)
	if err != nil {
		return transcript.TrackSet{}, err
	}
	ts := transcript.TrackSet{Manual: toTracks(info.Subtitles, transcript.OriginManual)}
	if y.Opts.IncludeAutomatic {
		ts.Automatic = toTracks(info.AutomaticCaptions, transcript.OriginAutomatic)
	}
	return ts, nil
}

// toTracks keeps only encodings in a supported format. Languages left with
// no encodings (live chat, json3-only) are dropped.
func toTracks(entries orderedSubs, origin transcript.Origin) []transcript.CaptionTrack {
	var out []transcript.CaptionTrack
	for _, e := range entries {
		track := transcript.CaptionTrack{Language: e.Lang, Origin: origin}
		for _, it := range e.Items {
			f, ok := transcript.ParseFormat(it.Ext)
			if !ok || it.URL == "" {
				continue
			}
			track.Encodings = append(track.Encodings, transcript.Encoding{Format: f, URL: it.URL})
		}
		if len(track.Encodings) > 0 {
			out = append(out, track)
		}
	}
	return out
}
