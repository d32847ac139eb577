package blog

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

const derivedExcerptLen = 200

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var (
	htmlSanitizer = bluemonday.UGCPolicy()
	textStripper  = bluemonday.StrictPolicy()
)

// renderContent turns submitted content into sanitized HTML. Markdown is
// rendered first; HTML input is sanitized as-is.
func renderContent(content, format string) string {
	if strings.EqualFold(strings.TrimSpace(format), ContentFormatMarkdown) {
		var buf bytes.Buffer
		if err := markdownEngine.Convert([]byte(content), &buf); err == nil {
			content = buf.String()
		}
	}
	return htmlSanitizer.Sanitize(content)
}

// deriveExcerpt builds an excerpt from the first words of stripped content.
func deriveExcerpt(html string) string {
	text := strings.Join(strings.Fields(textStripper.Sanitize(html)), " ")
	runes := []rune(text)
	if len(runes) <= derivedExcerptLen {
		return text
	}
	return strings.TrimSpace(string(runes[:derivedExcerptLen])) + "..."
}
