package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

// RenderMarkup renders **bold**, *italic* and `code` markers with base as
// the plain style.
func RenderMarkup(text string, base lipgloss.Style) string {
	var b strings.Builder
	for _, sp := range content.ParseMarkup(text) {
		switch sp.Style {
		case content.StyleBold:
			b.WriteString(base.Bold(true).Render(sp.Text))
		case content.StyleItalic:
			b.WriteString(base.Italic(true).Render(sp.Text))
		case content.StyleCode:
			b.WriteString(base.Foreground(theme.Secondary).Render(sp.Text))
		default:
			b.WriteString(base.Render(sp.Text))
		}
	}
	return b.String()
}

// RenderExample renders an example sentence with its highlight emphasized.
func RenderExample(ex content.Example) string {
	before, match, after, ok := ex.Split()
	if !ok {
		return theme.Body.Italic(true).Render(ex.Italian)
	}
	return theme.Body.Italic(true).Render(before) +
		theme.Highlight.Render(match) +
		theme.Body.Italic(true).Render(after)
}

// Wrap wraps rendered text to width.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
