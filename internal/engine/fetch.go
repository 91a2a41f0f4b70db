package engine

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrCaptionTooLarge is returned when a caption body exceeds CaptionMaxBytes.
var ErrCaptionTooLarge = errors.New("caption file too large")

// FetchText downloads a caption file with a single bounded attempt. There is
// no retry: the selector falls back to the next candidate instead.
func FetchText(ctx context.Context, rawURL string) (string, error) {
	if cfg.CaptionFetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.CaptionFetchTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	ua := cfg.PlatformUserAgent
	if ua == "" {
		ua = UserAgentChrome
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/vtt,text/plain,application/ttml+xml,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch caption: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("fetch caption: HTTP %d: %s", resp.StatusCode, snippet)
	}

	body, err := readResponseBody(resp, cfg.CaptionMaxBytes)
	if err != nil {
		return "", fmt.Errorf("read caption: %w", err)
	}
	return string(body), nil
}

// readResponseBody reads the response body, handling gzip decompression if needed.
func readResponseBody(resp *http.Response, limit int64) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	if limit <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrCaptionTooLarge, limit)
	}
	return body, nil
}
