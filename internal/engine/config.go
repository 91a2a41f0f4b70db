package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	PlatformBackend     string // ytdlp, innertube or auto
	YtDlpPath           string
	SubtitleLangs       []string // passed to the platform client
	PreferredLangs      []string // reorders tracks before selection; empty keeps platform order
	IncludeAutoCaptions bool
	GeoBypass           bool
	PlatformUserAgent   string

	CaptionFetchTimeout time.Duration
	CaptionMaxBytes     int64

	TranslateURL        string
	TranslateTimeout    time.Duration
	TranslateChunkChars int
	TranslateInterval   time.Duration

	OutputDir string

	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
	LLMClient  *llm.Client // nil = abstractive summaries disabled
}

var cfg = Config{
	CaptionFetchTimeout: 15 * time.Second,
	CaptionMaxBytes:     5 << 20,
	HTTPClient:          http.DefaultClient,
}

// Cfg exposes the engine configuration for sub-packages.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	cfg = c
	Cfg = &cfg
}
