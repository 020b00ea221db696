// Package render turns the plain-text content typed at the terminal into
// the HTML the backend stores for a blog post.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// MarkdownToHTML converts GitHub-flavoured Markdown to HTML. Raw HTML in
// the input is escaped.
func MarkdownToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// IsBlankHTML reports whether rendered content has no visible text, e.g.
// "<p></p>" or whitespace only.
func IsBlankHTML(s string) bool {
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag && r != ' ' && r != '\n' && r != '\t' && r != '\r':
			return false
		}
	}
	return true
}
