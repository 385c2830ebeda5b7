// Package markdown converts Markdown bodies to HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer wraps a goldmark instance with an optional sanitization policy.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds a GFM-enabled renderer with auto heading IDs. When sanitize
// is set, rendered HTML passes through bluemonday's UGC policy, which
// strips raw script/style markup embedded in content files.
func New(sanitize bool) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				// Content files are the site author's own, so inline HTML
				// passes through. Sanitize covers the untrusted case.
				gmhtml.WithUnsafe(),
			),
		),
	}
	if sanitize {
		r.policy = bluemonday.UGCPolicy()
	}
	return r
}

// Render converts src to HTML. The result is deterministic for a given
// src and renderer configuration.
func (r *Renderer) Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return template.HTML(r.Sanitize(buf.Bytes())), nil
}

// Sanitize applies the renderer's policy to already-rendered HTML. It is
// the identity function when sanitization is disabled; used directly for
// content records that are HTML rather than Markdown.
func (r *Renderer) Sanitize(html []byte) []byte {
	if r.policy == nil {
		return html
	}
	return r.policy.SanitizeBytes(html)
}
