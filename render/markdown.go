package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown converts with GFM tables enabled; fenced code blocks are part of
// core CommonMark already.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown converts a markdown cell source to HTML. When conversion fails
// the escaped source renders as preformatted text instead.
func Markdown(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return preBlock(source)
	}
	return buf.String()
}
