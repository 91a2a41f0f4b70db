package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
)

// YouTube Innertube API: ANDROID /player first, watch page scrape second.

const (
	ytPlayerURL      = "https://www.youtube.com/youtubei/v1/player"
	ytAndroidVersion = "20.10.38"
	ytAndroidUA      = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"

	// ytInitialPlayerResponseMarker marks the player JSON in watch page HTML.
	ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

	maxPlayerBytes    = 3 << 20
	maxWatchPageBytes = 6 << 20
)

// --- ANDROID client types (/player endpoint) ---

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails *struct {
		VideoID          string `json:"videoId"`
		Title            string `json:"title"`
		Author           string `json:"author"`
		LengthSeconds    string `json:"lengthSeconds"`
		ViewCount        string `json:"viewCount"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Microformat *struct {
		PlayerMicroformatRenderer struct {
			UploadDate  string `json:"uploadDate"`
			PublishDate string `json:"publishDate"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

func (p *playerResponse) captionTracks() []captionTrack {
	if p.Captions == nil {
		return nil
	}
	return p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
}

func (p *playerResponse) reason() string {
	if p.PlayabilityStatus == nil {
		return ""
	}
	return p.PlayabilityStatus.Reason
}

// Innertube talks to YouTube's internal API directly, no binary required.
type Innertube struct {
	Opts Options
	// PlayerURL and WatchURL override the endpoints; empty uses YouTube.
	PlayerURL string
	WatchURL  string
}

// NewInnertube returns an Innertube client for the default endpoints.
func NewInnertube(opts Options) *Innertube {
	return &Innertube{Opts: opts}
}

func (c *Innertube) hl() string {
	if langs := engine.NormLangs(c.Opts.Languages); len(langs) > 0 {
		return langs[0]
	}
	return "en"
}

// player returns the player response, shared by Metadata and Tracks through
// the engine cache. The watch page is scraped when /player fails or
// reports no captions.
func (c *Innertube) player(ctx context.Context, ref transcript.VideoRef) (*playerResponse, error) {
	key := engine.CacheKey("innertube", ref.String())
	if raw, ok := engine.CacheGet(ctx, key); ok {
		var pr playerResponse
		if err := json.Unmarshal(raw, &pr); err == nil {
			return &pr, nil
		}
	}

	raw, err := c.fetchPlayer(ctx, ref)
	var pr playerResponse
	if err == nil {
		err = json.Unmarshal(raw, &pr)
	}
	if err != nil || len(pr.captionTracks()) == 0 {
		if err != nil {
			slog.Warn("innertube: player failed, scraping watch page",
				slog.String("video_id", ref.String()), slog.Any("error", err))
		}
		scraped, scrapeErr := c.fetchWatchPage(ctx, ref)
		var spr playerResponse
		if scrapeErr == nil {
			scrapeErr = json.Unmarshal(scraped, &spr)
		}
		switch {
		case scrapeErr == nil:
			raw, pr, err = scraped, spr, nil
		case err != nil:
			return nil, errors.Join(err, scrapeErr)
		default:
			slog.Debug("innertube: watch page scrape failed", slog.Any("error", scrapeErr))
		}
	}

	engine.CacheSet(ctx, key, raw)
	return &pr, nil
}

// fetchPlayer uses the ANDROID Innertube /player endpoint.
func (c *Innertube) fetchPlayer(ctx context.Context, ref transcript.VideoRef) ([]byte, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: ref.String(),
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                c.hl(),
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.PlayerURL
	if endpoint == "" {
		endpoint = ytPlayerURL
	}
	engine.IncrPlatformRequests()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("android innertube: HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxPlayerBytes))
}

// fetchWatchPage scrapes ytInitialPlayerResponse from the watch page HTML.
func (c *Innertube) fetchWatchPage(ctx context.Context, ref transcript.VideoRef) ([]byte, error) {
	page := watchURL(ref)
	if c.WatchURL != "" {
		page = c.WatchURL + "?v=" + url.QueryEscape(ref.String())
	}
	ua := c.Opts.UserAgent
	if ua == "" {
		ua = engine.RandomUserAgent()
	}

	engine.IncrPlatformRequests()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, page, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", ua)
		req.Header.Set("Accept-Language", c.hl()+";q=0.9,en;q=0.8")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}
	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	data := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if data == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	return data, nil
}

// Metadata implements transcript.Platform.
func (c *Innertube) Metadata(ctx context.Context, ref transcript.VideoRef) (*transcript.Metadata, error) {
	pr, err := c.player(ctx, ref)
	if err != nil {
		return nil, err
	}
	if pr.VideoDetails == nil {
		if r := pr.reason(); r != "" {
			return nil, fmt.Errorf("video details unavailable: %s", r)
		}
		return nil, errors.New("no videoDetails in player response")
	}
	vd := pr.VideoDetails
	meta := &transcript.Metadata{
		Title:       vd.Title,
		Uploader:    vd.Author,
		Description: vd.ShortDescription,
	}
	meta.DurationSeconds, _ = strconv.Atoi(vd.LengthSeconds)
	meta.ViewCount, _ = strconv.ParseInt(vd.ViewCount, 10, 64)
	if pr.Microformat != nil {
		mf := pr.Microformat.PlayerMicroformatRenderer
		date := mf.UploadDate
		if date == "" {
			date = mf.PublishDate
		}
		meta.UploadDate = compactDate(date)
	}
	return meta, nil
}

// Tracks implements transcript.Platform.
func (c *Innertube) Tracks(ctx context.Context, ref transcript.VideoRef) (transcript.TrackSet, error) {
	pr, err := c.player(ctx, ref)
	if err != nil {
		return transcript.TrackSet{}, err
	}
	tracks := pr.captionTracks()
	if len(tracks) == 0 && pr.reason() != "" {
		slog.Info("innertube: no captions", slog.String("video_id", ref.String()), slog.String("reason", pr.reason()))
	}
	return tracksFromPlayer(tracks, c.Opts.IncludeAutomatic), nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// tracksFromPlayer partitions captionTracks by kind, keeping the first track
// per language and origin. Each track is offered as VTT and TTML.
func tracksFromPlayer(tracks []captionTrack, includeAuto bool) transcript.TrackSet {
	var ts transcript.TrackSet
	seen := make(map[string]bool)
	for _, t := range tracks {
		if t.BaseURL == "" || needsPoToken(t.BaseURL) {
			continue
		}
		origin := transcript.OriginManual
		if t.Kind == "asr" {
			origin = transcript.OriginAutomatic
		}
		if origin == transcript.OriginAutomatic && !includeAuto {
			continue
		}
		key := string(origin) + "/" + t.LanguageCode
		if seen[key] {
			continue
		}
		seen[key] = true

		ct := transcript.CaptionTrack{Language: t.LanguageCode, Origin: origin}
		for _, f := range []transcript.Format{transcript.FormatVTT, transcript.FormatTTML} {
			if u := withFormat(t.BaseURL, string(f)); u != "" {
				ct.Encodings = append(ct.Encodings, transcript.Encoding{Format: f, URL: u})
			}
		}
		if len(ct.Encodings) == 0 {
			continue
		}
		if origin == transcript.OriginManual {
			ts.Manual = append(ts.Manual, ct)
		} else {
			ts.Automatic = append(ts.Automatic, ct)
		}
	}
	return ts
}

// withFormat sets the timedtext fmt parameter on a caption base URL.
func withFormat(base, format string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("fmt", format)
	u.RawQuery = q.Encode()
	return u.String()
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
