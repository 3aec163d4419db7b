package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/exercise"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

// Picker selects one of a list of options with left/right or a digit key.
// Selected is -1 while nothing is chosen.
type Picker struct {
	Options  []string
	Selected int
	Focused  bool

	// States colors options after a check; nil before.
	States []exercise.OptionState
}

// NewPicker creates a picker with nothing selected.
func NewPicker(options []string) Picker {
	return Picker{Options: options, Selected: -1}
}

// Update handles selection keys while focused and not yet checked.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.Focused || p.States != nil || len(p.Options) == 0 {
		return p, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key := kmsg.String(); key {
	case "right", "l", "space":
		p.Selected = (p.Selected + 1) % len(p.Options)
	case "left", "h":
		if p.Selected <= 0 {
			p.Selected = len(p.Options) - 1
		} else {
			p.Selected--
		}
	case "backspace", "delete":
		p.Selected = -1
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(p.Options) {
				p.Selected = i
			}
		}
	}
	return p, nil
}

// Value returns the selected option text, or "".
func (p Picker) Value() string {
	if p.Selected < 0 || p.Selected >= len(p.Options) {
		return ""
	}
	return p.Options[p.Selected]
}

// Select chooses the option equal to text, if any.
func (p *Picker) Select(text string) {
	p.Selected = -1
	for i, opt := range p.Options {
		if opt == text {
			p.Selected = i
			return
		}
	}
}

// View renders the options on one line.
func (p Picker) View() string {
	parts := make([]string, len(p.Options))
	for i, opt := range p.Options {
		label := fmt.Sprintf("%d) %s", i+1, opt)
		style := theme.Unselected
		if i == p.Selected {
			label = "[" + label + "]"
			style = theme.Selected
		} else {
			label = " " + label + " "
		}

		if p.States != nil && i < len(p.States) {
			switch p.States[i] {
			case exercise.OptionCorrect, exercise.OptionCorrectAnswer:
				style = theme.Correct
			case exercise.OptionIncorrect:
				style = theme.Incorrect
			default:
				style = lipgloss.NewStyle().Foreground(theme.TextDim)
			}
		}
		parts[i] = style.Render(label)
	}

	prefix := "  "
	if p.Focused && p.States == nil {
		prefix = theme.Selected.Render("▸ ")
	}
	return prefix + strings.Join(parts, " ")
}
