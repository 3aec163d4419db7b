package scheda

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/ui/components"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

// renderTheory renders the theory sections. Unknown section types are
// skipped.
func renderTheory(th content.Theory, width int) string {
	inner := max(width-4, 20)
	var blocks []string

	for _, sec := range th.Sections {
		var block string
		switch sec.Type {
		case content.SectionIntro:
			block = components.Wrap(components.RenderMarkup(sec.Content, theme.Body.Italic(true)), inner)
		case content.SectionHeading:
			block = theme.Title.Render(content.PlainText(sec.Content))
		case content.SectionParagraph:
			block = components.Wrap(components.RenderMarkup(sec.Content, theme.Body), inner)
		case content.SectionTable:
			block = renderTable(sec)
		case content.SectionExample:
			lines := make([]string, 0, len(sec.Examples))
			for _, ex := range sec.Examples {
				lines = append(lines, "› "+components.RenderExample(ex))
			}
			block = theme.Card.Width(inner).Render(strings.Join(lines, "\n"))
		case content.SectionRule:
			block = theme.Card.
				BorderForeground(theme.Primary).
				Width(inner).
				Render(theme.Selected.Render("Regola") + "\n" +
					components.RenderMarkup(sec.Content, theme.Body))
		case content.SectionNote:
			block = components.Wrap(theme.Hint.Render("Nota: ")+
				components.RenderMarkup(sec.Content, theme.Hint), inner)
		case content.SectionList:
			lines := make([]string, 0, len(sec.Items))
			for _, it := range sec.Items {
				lines = append(lines, "  • "+components.RenderMarkup(it, theme.Body))
			}
			block = components.Wrap(strings.Join(lines, "\n"), inner)
		default:
			continue
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n")
}

func renderTable(sec content.Section) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Selected.Padding(0, 1)
			}
			return theme.Body.Padding(0, 1)
		})
	if len(sec.Headers) > 0 {
		t = t.Headers(plain(sec.Headers)...)
	}
	for _, row := range sec.Rows {
		t = t.Row(plain(row)...)
	}

	out := t.Render()
	if sec.Caption != "" {
		out = theme.Subtitle.Render(content.PlainText(sec.Caption)) + "\n" + out
	}
	return out
}

func plain(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = content.PlainText(c)
	}
	return out
}
