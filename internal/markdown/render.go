// File: internal/markdown/render.go
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts user-authored markdown bodies to HTML for detail
// views. Raw HTML in the source is escaped by goldmark's defaults.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render returns the HTML for src, or the empty string when conversion
// fails. Callers always keep the raw body alongside the rendered form.
func (r *Renderer) Render(src string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return buf.String()
}
