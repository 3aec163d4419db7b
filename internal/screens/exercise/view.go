package exercise

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	ex "github.com/italienapp/italienapp/internal/exercise"
	"github.com/italienapp/italienapp/internal/ui/components"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

// page accumulates rendered lines and remembers where the focused field is.
type page struct {
	b         strings.Builder
	lines     int
	focusLine int
}

func (p *page) line(s string) {
	p.b.WriteString(s)
	p.b.WriteString("\n")
	p.lines += strings.Count(s, "\n") + 1
}

func (p *page) blank() {
	p.line("")
}

// render returns the full exercise body and the line of the focused field,
// or -1 when no field has focus.
func (s *ExerciseScreen) render(width int) (string, int) {
	p := &page{focusLine: -1}
	inner := max(width-4, 20)

	p.line(theme.Title.Render(fmt.Sprintf("Esercizio %s", s.exercise.Number)) +
		"  " + theme.Subtitle.Render(s.exercise.Kind().DisplayName()))
	if s.exercise.Instruction != "" {
		p.line(components.Wrap(components.RenderMarkup(s.exercise.Instruction, theme.Body), inner))
	}
	p.blank()

	switch b := s.exercise.Body.(type) {
	case *ex.FillInBlank:
		for i, it := range b.Items {
			fl, _ := s.form.field(ex.Slot{Item: i, Part: -1})
			s.mark(p, fl)
			p.line(fmt.Sprintf("%2d. ", i+1) + theme.Body.Render(it.Before) + fl.text.View() +
				theme.Body.Render(it.After) + correction(fl))
		}
	case *ex.MultipleChoice:
		for i, it := range b.Items {
			fl, _ := s.form.field(ex.Slot{Item: i, Part: -1})
			if it.Prompt != "" {
				p.line(fmt.Sprintf("%2d. ", i+1) + components.RenderMarkup(it.Prompt, theme.Body))
			}
			s.mark(p, fl)
			p.line("    " + fl.picker.View())
		}
	case *ex.Transformation:
		for i, it := range b.Items {
			fl, _ := s.form.field(ex.Slot{Item: i, Part: -1})
			p.line(fmt.Sprintf("%2d. ", i+1) + theme.Body.Render(it.Given))
			s.mark(p, fl)
			p.line("    → " + fl.text.View() + correction(fl))
		}
	case *ex.SentenceRewriting:
		for i, it := range b.Items {
			fl, _ := s.form.field(ex.Slot{Item: i, Part: -1})
			line := fmt.Sprintf("%2d. ", i+1) + theme.Body.Render(it.Given)
			if it.Hint != "" {
				line += "  " + theme.Hint.Render("("+it.Hint+")")
			}
			p.line(line)
			s.mark(p, fl)
			p.line("    → " + fl.text.View() + correction(fl))
		}
	case *ex.SentenceCompletion:
		for i, it := range b.Items {
			var line strings.Builder
			var fixes []string
			for j, seg := range it.Segments {
				if !seg.Blank {
					line.WriteString(theme.Body.Render(seg.Text))
					continue
				}
				fl, _ := s.form.field(ex.Slot{Item: i, Part: j})
				s.mark(p, fl)
				line.WriteString(fl.text.View())
				if c := correction(fl); c != "" {
					fixes = append(fixes, c)
				}
			}
			p.line(fmt.Sprintf("%2d. ", i+1) + line.String())
			if len(fixes) > 0 {
				p.line("   " + strings.Join(fixes, " "))
			}
		}
	case *ex.TableCompletion:
		s.renderTable(p, b)
	case *ex.Matching:
		labelWidth := 0
		for _, l := range b.Left {
			labelWidth = max(labelWidth, lipgloss.Width(l))
		}
		for l, left := range b.Left {
			fl, _ := s.form.field(ex.Slot{Item: l, Part: -1})
			s.mark(p, fl)
			label := lipgloss.NewStyle().Width(labelWidth).Render(left)
			p.line(fmt.Sprintf("%2d. ", l+1) + theme.Body.Render(label) + "  " + fl.picker.View())
		}
	case *ex.OpenEnded:
		fl, _ := s.form.field(ex.Slot{Item: 0, Part: -1})
		s.mark(p, fl)
		p.line("    " + fl.text.View())
		if (s.solutions || s.done) && b.SuggestedAnswer != "" {
			p.blank()
			p.line(theme.Subtitle.Render("Risposta suggerita:"))
			p.line(components.Wrap(components.RenderMarkup(b.SuggestedAnswer, theme.Body), inner))
		}
	}

	p.blank()
	s.renderStatus(p)
	p.blank()
	p.line(components.ButtonRow(s.buttons()...))

	return p.b.String(), p.focusLine
}

// mark records the current line as the focus line when fl is focused.
func (s *ExerciseScreen) mark(p *page, fl *field) {
	if fl != nil && s.form.Focused() < len(s.form.fields) && s.form.fields[s.form.Focused()] == fl {
		p.focusLine = p.lines
	}
}

func (s *ExerciseScreen) renderTable(p *page, b *ex.TableCompletion) {
	cols := len(b.Headers)
	for _, row := range b.Rows {
		cols = max(cols, len(row.Cells))
	}
	widths := make([]int, cols)
	for c := range widths {
		widths[c] = 16
		if c < len(b.Headers) {
			widths[c] = max(widths[c], lipgloss.Width(b.Headers[c])+2)
		}
	}
	for _, row := range b.Rows {
		for c, cell := range row.Cells {
			if !cell.Editable {
				widths[c] = max(widths[c], lipgloss.Width(cell.Value)+2)
			}
		}
	}

	if len(b.Headers) > 0 {
		var hdr strings.Builder
		for c, h := range b.Headers {
			hdr.WriteString(theme.Selected.Width(widths[c]).Render(h))
		}
		p.line("    " + hdr.String())
	}

	var fixes []string
	for r, row := range b.Rows {
		var line strings.Builder
		for c, cell := range row.Cells {
			cellStyle := lipgloss.NewStyle().Width(widths[c])
			if !cell.Editable {
				line.WriteString(theme.Body.Width(widths[c]).Render(cell.Value))
				continue
			}
			fl, _ := s.form.field(ex.Slot{Item: r, Part: c})
			s.mark(p, fl)
			line.WriteString(cellStyle.Render(fl.text.View()))
			if fl.verdict != nil && !fl.verdict.Correct {
				fixes = append(fixes, fmt.Sprintf("riga %d: %s", r+1, fl.verdict.Expected))
			}
		}
		p.line("    " + line.String())
	}
	if len(fixes) > 0 {
		p.line("    " + theme.Correct.Render(strings.Join(fixes, " · ")))
	}
}

func (s *ExerciseScreen) renderStatus(p *page) {
	if s.errMsg != "" {
		p.line(theme.Incorrect.Render(s.errMsg))
	}

	if s.result != nil {
		badge := fmt.Sprintf("%d/%d corrette", s.result.Score, s.result.Total)
		if s.result.Good() {
			p.line(theme.BadgeGood.Render(badge))
		} else {
			p.line(theme.BadgeNeedsWork.Render(badge))
		}
	}
	if s.solutions && s.gradable() {
		p.line(theme.Hint.Render("Soluzioni mostrate: il risultato non viene salvato."))
	}

	if s.previous != nil {
		if s.previous.OpenEnded() {
			p.line(theme.Correct.Render("✓ Segnato come fatto"))
		} else {
			p.line(theme.Subtitle.Render(fmt.Sprintf("Ultimo risultato salvato: %d/%d · tentativi: %d",
				s.previous.Score, s.previous.Total, s.previous.Attempts)))
		}
	}
}

// correction shows the expected answer next to a wrong value.
func correction(fl *field) string {
	if fl == nil || fl.verdict == nil || !fl.verdict.Graded || fl.verdict.Correct {
		return ""
	}
	return "  " + theme.Hint.Render("→ ") + theme.Correct.Render(fl.verdict.Expected)
}
