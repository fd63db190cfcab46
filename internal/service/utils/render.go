// Package utils renders post content for delivery. Content is stored
// as the raw markdown the author submitted; HTML is produced on read.
package utils

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &TextProcessor{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown to sanitized HTML. Whatever goldmark lets
// through still passes the sanitizer, so raw HTML in the source never
// reaches clients.
func (tp *TextProcessor) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return tp.policy.Sanitize(buf.String()), nil
}
