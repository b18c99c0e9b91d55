package web

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
)

func init() {
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	// Editors paste embeds into markdown blocks; everything is sanitized after
	// rendering, so raw HTML is let through goldmark and filtered here.
	sanitizer = bluemonday.UGCPolicy()
	sanitizer.RequireNoFollowOnLinks(false)
	sanitizer.AddTargetBlankToFullyQualifiedLinks(true)
}

// RenderMarkdown converts a markdown block to sanitized HTML. Returns an
// empty string for empty input.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return sanitizer.Sanitize(src)
	}

	return sanitizer.Sanitize(buf.String())
}
