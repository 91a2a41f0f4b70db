// Package translate sends transcript text to a free machine translation
// endpoint, chunk by chunk, and reports which chunks were actually translated.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// Defaults used when the client is built with zero values.
const (
	DefaultURL        = "https://translate.googleapis.com/translate_a/single"
	DefaultChunkRunes = 4000
	DefaultTimeout    = 10 * time.Second
	DefaultInterval   = 100 * time.Millisecond
)

// ErrUnsupportedLanguage is returned for a target outside SupportedLanguages.
var ErrUnsupportedLanguage = errors.New("unsupported target language")

// Status tells whether a chunk was translated.
type Status string

const (
	StatusTranslated  Status = "translated"
	StatusUnavailable Status = "unavailable"
)

// Chunk is one request's worth of text. An unavailable chunk carries the
// original text in Text so the joined result stays readable.
type Chunk struct {
	Original string `json:"-"`
	Text     string `json:"text"`
	Status   Status `json:"status"`
	Err      string `json:"error,omitempty"`
}

// Result is a whole translation.
type Result struct {
	Target string  `json:"target"`
	Chunks []Chunk `json:"chunks"`
}

// Text joins all chunks with a single space.
func (r *Result) Text() string {
	parts := make([]string, len(r.Chunks))
	for i, c := range r.Chunks {
		parts[i] = c.Text
	}
	return strings.Join(parts, " ")
}

// Degraded reports whether any chunk could not be translated.
func (r *Result) Degraded() bool {
	for _, c := range r.Chunks {
		if c.Status != StatusTranslated {
			return true
		}
	}
	return false
}

// Unavailable counts untranslated chunks.
func (r *Result) Unavailable() int {
	n := 0
	for _, c := range r.Chunks {
		if c.Status != StatusTranslated {
			n++
		}
	}
	return n
}

// Client calls the translation endpoint.
type Client struct {
	BaseURL    string
	HTTP       *http.Client
	ChunkRunes int
	Timeout    time.Duration
	Logger     *slog.Logger

	limiter *rate.Limiter
}

// New builds a client. Zero values fall back to the package defaults.
func New(baseURL string, timeout time.Duration, chunkRunes int, interval time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if chunkRunes <= 0 {
		chunkRunes = DefaultChunkRunes
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Client{
		BaseURL:    baseURL,
		ChunkRunes: chunkRunes,
		Timeout:    timeout,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
	}
}

// NewFromConfig builds a client from engine.Cfg.
func NewFromConfig() *Client {
	c := New(engine.Cfg.TranslateURL, engine.Cfg.TranslateTimeout, engine.Cfg.TranslateChunkChars, engine.Cfg.TranslateInterval)
	c.HTTP = engine.Cfg.HTTPClient
	return c
}

// Translate translates text into target. Per-chunk failures do not fail the
// call; they are reported as unavailable chunks. Only an unsupported target
// or a canceled context returns an error.
func (c *Client) Translate(ctx context.Context, text, target string) (*Result, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if !Supported(target) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, target)
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	res := &Result{Target: target, Chunks: []Chunk{}}
	for i, part := range Split(text, c.ChunkRunes) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		engine.IncrTranslateChunks()
		out, err := c.translateChunk(ctx, part, target)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			engine.IncrTranslateDegraded()
			logger.Warn("translate: chunk unavailable",
				slog.Int("chunk", i), slog.String("target", target), slog.Any("error", err))
			res.Chunks = append(res.Chunks, Chunk{Original: part, Text: part, Status: StatusUnavailable, Err: err.Error()})
			continue
		}
		res.Chunks = append(res.Chunks, Chunk{Original: part, Text: out, Status: StatusTranslated})
	}
	return res, nil
}

func (c *Client) translateChunk(ctx context.Context, chunk, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", engine.UserAgentChrome)

	hc := c.HTTP
	if hc == nil {
		hc = engine.Cfg.HTTPClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return parseResponse(body)
}

// parseResponse concatenates the first element of each entry in the
// response's first array: [[["translated","original",...],...],...].
func parseResponse(body []byte) (string, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(top) == 0 {
		return "", errors.New("empty response")
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(top[0], &entries); err != nil {
		return "", fmt.Errorf("decode sentences: %w", err)
	}
	var sb strings.Builder
	for _, e := range entries {
		var fields []json.RawMessage
		if err := json.Unmarshal(e, &fields); err != nil || len(fields) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(fields[0], &s); err == nil {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no translated text in response")
	}
	return sb.String(), nil
}

// Split cuts text into pieces of at most n runes. Empty text yields no pieces.
func Split(text string, n int) []string {
	if n <= 0 {
		n = DefaultChunkRunes
	}
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); i += n {
		end := min(i+n, len(runes))
		out = append(out, string(runes[i:end]))
	}
	return out
}
