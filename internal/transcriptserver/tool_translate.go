package transcriptserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/anatolykoptev/go_transcript/internal/translate"
)

// DefaultTarget is the translation target when none is given.
const DefaultTarget = "ar"

type TranslateInput struct {
	URL    string `json:"url" jsonschema:"YouTube video URL"`
	Target string `json:"target,omitempty" jsonschema:"Target language code: ar, en, fr, de, es, it, pt, ru, ja, zh (default ar)"`
}

type TranslateOutput struct {
	VideoID           string `json:"video_id"`
	Target            string `json:"target"`
	TargetName        string `json:"target_name"`
	Text              string `json:"text"`
	Chunks            int    `json:"chunks"`
	UnavailableChunks int    `json:"unavailable_chunks"`
	Degraded          bool   `json:"degraded"`
}

func registerTranslate(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_translate",
		Description: "Translate a video's transcript with a free machine translation service. Chunks that fail keep their original text and are counted in unavailable_chunks; degraded is true when any chunk was not translated. The latest translation is included by transcript_export.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TranslateInput) (*mcp.CallToolResult, TranslateOutput, error) {
		out, err := svc.Translate(ctx, input)
		return nil, out, err
	})
}

// Translate translates the plain transcript and stores the result for export.
func (s *Service) Translate(ctx context.Context, input TranslateInput) (TranslateOutput, error) {
	target := toolutil.NormLang(input.Target, DefaultTarget)
	if !translate.Supported(target) {
		return TranslateOutput{}, unsupportedTarget(target)
	}
	rep, _, err := s.report(ctx, input.URL, false)
	if err != nil {
		return TranslateOutput{}, err
	}

	// A degraded translation is exported as the latest run but never reused.
	res, ok := s.Store.Translation(ctx, rep.VideoID, target)
	if !ok || res.Degraded() {
		res, err = s.Translator.Translate(ctx, rep.Result.PlainText, target)
		if err != nil {
			return TranslateOutput{}, err
		}
		if res.Degraded() {
			s.logger().Warn("translation degraded",
				slog.String("video_id", rep.VideoID.String()), slog.String("target", target),
				slog.Int("unavailable", res.Unavailable()), slog.Int("chunks", len(res.Chunks)))
		}
		s.Store.SaveTranslation(ctx, rep.VideoID, res)
	}

	return TranslateOutput{
		VideoID:           rep.VideoID.String(),
		Target:            target,
		TargetName:        translate.Name(target),
		Text:              res.Text(),
		Chunks:            len(res.Chunks),
		UnavailableChunks: res.Unavailable(),
		Degraded:          res.Degraded(),
	}, nil
}
