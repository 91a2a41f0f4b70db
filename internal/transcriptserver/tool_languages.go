package transcriptserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/translate"
)

type LanguagesInput struct{}

type LanguagesOutput struct {
	Default   string               `json:"default"`
	Languages []translate.Language `json:"languages"`
}

func registerLanguages(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transcript_languages",
		Description: "List the target languages transcript_translate accepts.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ LanguagesInput) (*mcp.CallToolResult, LanguagesOutput, error) {
		return nil, LanguagesOutput{Default: DefaultTarget, Languages: translate.SupportedLanguages}, nil
	})
}

func unsupportedTarget(target string) error {
	codes := make([]string, len(translate.SupportedLanguages))
	for i, l := range translate.SupportedLanguages {
		codes[i] = l.Code
	}
	return fmt.Errorf("%w %q; use one of: %s", translate.ErrUnsupportedLanguage, target, strings.Join(codes, ", "))
}
