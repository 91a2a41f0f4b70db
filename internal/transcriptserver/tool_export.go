package transcriptserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/analysis"
	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/report"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

const reportPreviewRunes = 2000

type ExportInput struct {
	URL    string `json:"url" jsonschema:"YouTube video URL"`
	Target string `json:"target,omitempty" jsonschema:"Include the stored translation into this language (default: the latest translation, if any)"`
}

type ExportOutput struct {
	VideoID       string   `json:"video_id"`
	Dir           string   `json:"dir"`
	Files         []string `json:"files"`
	HasTranslated bool     `json:"has_translated"`
	ReportPreview string   `json:"report_preview"`
}

func registerExport(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_export",
		Description: "Write a video's transcript files to the output directory: transcript_<id>.txt, transcript_timed_<id>.txt, transcript_translated_<id>.txt (only after transcript_translate) and a Markdown report_<id>.md with metadata and statistics.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ExportInput) (*mcp.CallToolResult, ExportOutput, error) {
		out, err := svc.Export(ctx, input)
		return nil, out, err
	})
}

// Export renders the report and writes all artifacts.
func (s *Service) Export(ctx context.Context, input ExportInput) (ExportOutput, error) {
	rep, _, err := s.report(ctx, input.URL, false)
	if err != nil {
		return ExportOutput{}, err
	}

	var translated string
	if tr, ok := s.Store.Translation(ctx, rep.VideoID, toolutil.NormLang(input.Target, "")); ok {
		translated = tr.Text()
	}

	id := rep.VideoID.String()
	doc := report.Render(report.Input{
		VideoID:     id,
		Metadata:    rep.Metadata,
		Result:      rep.Result,
		Stats:       analysis.Analyze(rep.Result.PlainText),
		GeneratedAt: rep.ExtractedAt,
	})
	paths, err := report.WriteAll(s.OutputDir, report.Artifacts(id, rep.Result, translated, doc))
	if err != nil {
		return ExportOutput{}, fmt.Errorf("export: %w", err)
	}
	s.logger().Info("exported", slog.String("video_id", id), slog.Int("files", len(paths)))

	return ExportOutput{
		VideoID:       id,
		Dir:           s.OutputDir,
		Files:         paths,
		HasTranslated: translated != "",
		ReportPreview: engine.TruncateRunes(doc, reportPreviewRunes, "..."),
	}, nil
}
