package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/exercise"
	"github.com/italienapp/italienapp/internal/router"
	"github.com/italienapp/italienapp/internal/screen"
	"github.com/italienapp/italienapp/internal/store"
	"github.com/italienapp/italienapp/internal/ui/layout"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

// Limit is the number of attempts shown.
const Limit = 50

// AttemptSource lists recorded attempts, newest first.
type AttemptSource interface {
	Recent(ctx context.Context, opts store.QueryOpts) ([]store.AttemptEvent, error)
}

type historyLoadedMsg struct {
	Attempts []store.AttemptEvent
	Err      error
}

// HistoryScreen displays the most recent exercise attempts.
type HistoryScreen struct {
	source   AttemptSource
	loader   *content.Loader
	attempts []store.AttemptEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. loader resolves titles and may be nil.
func New(source AttemptSource, loader *content.Loader) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		loader:   loader,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.source.Recent(context.Background(), store.QueryOpts{Limit: Limit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts}
	}
}

func (s *HistoryScreen) Title() string {
	return "Cronologia"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Dettagli"},
		{Key: "↑↓", Description: "Naviga"},
		{Key: "Esc", Description: "Indietro"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nErrore: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Caricamento...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nessun esercizio svolto. Inizia una scheda!")
	}

	var b strings.Builder
	b.WriteString("\n")
	selectedLine := 1

	for i, a := range s.attempts {
		dateStr := a.At.Local().Format("02/01/2006 15:04")

		outcome := "fatto"
		if !a.OpenEnded {
			outcome = fmt.Sprintf("%d/%d", a.Score, a.Total)
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
			selectedLine = strings.Count(b.String(), "\n")
		}

		line := fmt.Sprintf("%s%s  Scheda %-6s %-10s %s",
			prefix, dateStr, a.SchedaID, a.ExerciseID, outcome)

		style := lipgloss.NewStyle().Foreground(outcomeColor(a))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render("    "+s.describe(a))))
			b.WriteString("\n")
		}
	}

	out, _ := layout.Scroll(b.String(), selectedLine-height+2, height)
	return out
}

// describe resolves the scheda title and exercise kind of a.
func (s *HistoryScreen) describe(a store.AttemptEvent) string {
	if s.loader == nil {
		return fmt.Sprintf("#%d", a.Sequence)
	}
	sc, err := s.loader.Scheda(a.SchedaID)
	if err != nil {
		return fmt.Sprintf("#%d · scheda non disponibile", a.Sequence)
	}
	desc := fmt.Sprintf("#%d · %s", a.Sequence, sc.Meta.Title)
	if e, ok := sc.Exercise(a.ExerciseID); ok {
		desc += fmt.Sprintf(" · Esercizio %s (%s)", e.Number, e.Kind().DisplayName())
	}
	return desc
}

func outcomeColor(a store.AttemptEvent) color.Color {
	switch {
	case a.OpenEnded:
		return theme.Secondary
	case a.Total > 0 && a.Score == a.Total:
		return theme.Success
	case a.Total > 0 && float64(a.Score)/float64(a.Total) >= exercise.GoodThreshold:
		return theme.Primary
	default:
		return theme.Accent
	}
}
