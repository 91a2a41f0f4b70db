// go_transcript — YouTube transcript extraction MCP server.
//
// Exposes tools to extract, search, translate, summarize, analyze and export
// video transcripts. Caption tracks are listed through yt-dlp or the
// Innertube API and the first usable track wins: manual before automatic,
// VTT before SRT before TTML.
package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_transcript/internal/analysis"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/platform"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/transcriptserver"
	"github.com/anatolykoptev/go_transcript/internal/translate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8892")
)

func main() {
	initEngine()

	slog.Info("starting go_transcript",
		slog.String("port", mcpPort),
		slog.String("backend", engine.Cfg.PlatformBackend),
	)

	plat, err := platform.New(engine.Cfg.PlatformBackend, engine.Cfg.YtDlpPath, platform.Options{
		Languages:        engine.Cfg.SubtitleLangs,
		IncludeAutomatic: engine.Cfg.IncludeAutoCaptions,
		UserAgent:        engine.Cfg.PlatformUserAgent,
		GeoBypass:        engine.Cfg.GeoBypass,
	})
	if err != nil {
		slog.Error("platform init failed", slog.Any("error", err))
		return
	}

	pipeline := &transcript.Pipeline{
		Platform: plat,
		Fetcher:  transcript.FetcherFunc(engine.FetchText),
		Prefer:   engine.Cfg.PreferredLangs,
	}
	svc := transcriptserver.NewService(pipeline, translate.NewFromConfig(), analysis.NewSummarizer(), engine.Cfg.OutputDir)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	transcriptserver.RegisterTools(server, svc)
	slog.Info("tools registered", slog.Int("count", transcriptserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		PlatformBackend:      env.Str("PLATFORM_BACKEND", platform.BackendAuto),
		YtDlpPath:            env.Str("YTDLP_PATH", "yt-dlp"),
		SubtitleLangs:        engine.NormLangs(env.List("SUBTITLE_LANGS", "ar,en,es,fr,de,it,pt,ru")),
		PreferredLangs:       engine.NormLangs(env.List("PREFERRED_LANGS", "")),
		IncludeAutoCaptions:  envBool("INCLUDE_AUTO_CAPTIONS", true),
		GeoBypass:            envBool("GEO_BYPASS", true),
		PlatformUserAgent:    env.Str("PLATFORM_USER_AGENT", engine.UserAgentChrome),
		CaptionFetchTimeout:  env.Duration("CAPTION_FETCH_TIMEOUT", 15*time.Second),
		CaptionMaxBytes:      int64(env.Int("CAPTION_MAX_BYTES", 5<<20)),
		TranslateURL:         env.Str("TRANSLATE_URL", translate.DefaultURL),
		TranslateTimeout:     env.Duration("TRANSLATE_TIMEOUT", translate.DefaultTimeout),
		TranslateChunkChars:  env.Int("TRANSLATE_CHUNK_CHARS", translate.DefaultChunkRunes),
		TranslateInterval:    env.Duration("TRANSLATE_INTERVAL", translate.DefaultInterval),
		OutputDir:            env.Str("OUTPUT_DIR", "./transcripts"),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.2),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 2048),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 500),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	// Summaries fall back to the extractive summarizer without a key.
	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
		slog.Info("llm summaries enabled", slog.String("model", c.LLMModel))
	}

	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 30*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(env.Str(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}
