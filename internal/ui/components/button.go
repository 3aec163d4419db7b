package components

import (
	"strings"

	"github.com/italienapp/italienapp/internal/ui/layout"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

// Button is a labeled action with its shortcut key.
type Button struct {
	Label  string
	Key    string
	Active bool
}

// NewButton creates a new button.
func NewButton(label, key string, active bool) Button {
	return Button{
		Label:  label,
		Key:    key,
		Active: active,
	}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " (" + b.Key + ")"
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, 0, len(buttons))
	for _, b := range buttons {
		parts = append(parts, b.View())
	}
	return strings.Join(parts, " ")
}

// Hints returns footer hints for the active buttons.
func Hints(buttons ...Button) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(buttons))
	for _, b := range buttons {
		if b.Active && b.Key != "" {
			hints = append(hints, layout.KeyHint{Key: b.Key, Description: b.Label})
		}
	}
	return hints
}
