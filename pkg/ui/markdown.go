package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders page sections with glamour, re-creating the
// underlying renderer only when the wrap width changes.
type MarkdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRendererWithTheme returns a renderer matching the theme's background.
func NewMarkdownRendererWithTheme(width int, theme Theme) *MarkdownRenderer {
	style := "light"
	if theme.IsDark() {
		style = "dracula"
	}
	mr := &MarkdownRenderer{style: style}
	mr.SetWidth(width)
	return mr
}

// SetWidth changes the wrap width.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == mr.width && mr.renderer != nil {
		return
	}
	mr.width = width
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(mr.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		mr.renderer = nil
		return
	}
	mr.renderer = r
}

// Render returns the styled markdown, or the raw text if rendering fails.
func (mr *MarkdownRenderer) Render(md string) string {
	if mr.renderer == nil {
		return md
	}
	out, err := mr.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
