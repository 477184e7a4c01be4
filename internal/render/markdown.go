// Package render turns card text into HTML for display.
package render

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// linkFlags open every link in a new browsing context without handing it the
// opener or the referrer.
const linkFlags = html.HrefTargetBlank | html.NoopenerLinks | html.NoreferrerLinks

// Markdown renders card text. A new parser is needed per call; gomarkdown
// parsers are not reusable.
func Markdown(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML | linkFlags,
	})
	return string(markdown.ToHTML([]byte(text), p, r))
}
