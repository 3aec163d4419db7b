package scheda

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/router"
	"github.com/italienapp/italienapp/internal/screen"
	exscreen "github.com/italienapp/italienapp/internal/screens/exercise"
	"github.com/italienapp/italienapp/internal/ui/components"
	"github.com/italienapp/italienapp/internal/ui/layout"
	"github.com/italienapp/italienapp/internal/ui/theme"
)

type tab int

const (
	tabTheory tab = iota
	tabExercises
)

type schedaLoadedMsg struct {
	id       string
	scheda   *content.Scheda
	manifest *content.Manifest
	err      error
}

// SchedaScreen shows the theory and the exercise list of one scheda.
type SchedaScreen struct {
	loader *content.Loader
	store  *progress.Store
	logger *slog.Logger
	id     string

	scheda   *content.Scheda
	manifest *content.Manifest
	tab      tab
	menu     components.Menu
	offset   int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*SchedaScreen)(nil)
var _ screen.KeyHintProvider = (*SchedaScreen)(nil)
var _ screen.Refresher = (*SchedaScreen)(nil)

// New creates a screen for scheda id.
func New(loader *content.Loader, store *progress.Store, logger *slog.Logger, id string) *SchedaScreen {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchedaScreen{
		loader: loader,
		store:  store,
		logger: logger,
		id:     id,
	}
}

func (s *SchedaScreen) Init() tea.Cmd {
	id := s.id
	return func() tea.Msg {
		m, err := s.loader.Manifest()
		if err != nil {
			return schedaLoadedMsg{id: id, err: err}
		}
		sc, err := s.loader.Scheda(id)
		return schedaLoadedMsg{id: id, scheda: sc, manifest: m, err: err}
	}
}

// Refresh rebuilds the exercise statuses after returning from an exercise.
func (s *SchedaScreen) Refresh() tea.Cmd {
	if s.scheda != nil {
		s.buildMenu()
	}
	return nil
}

func (s *SchedaScreen) Title() string {
	if s.scheda == nil {
		return "Scheda " + s.id
	}
	return fmt.Sprintf("Scheda %s · %s", s.scheda.Meta.ID, s.scheda.Meta.Title)
}

func (s *SchedaScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Teoria/Esercizi"}}
	if s.tab == tabExercises {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Apri"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scorri"})
	}
	if s.manifest != nil {
		prev, next := content.Neighbours(s.manifest, s.id)
		if prev != "" {
			hints = append(hints, layout.KeyHint{Key: "[", Description: "Precedente"})
		}
		if next != "" {
			hints = append(hints, layout.KeyHint{Key: "]", Description: "Successiva"})
		}
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Indietro"})
}

func (s *SchedaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case schedaLoadedMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.loaded = true
		if msg.err != nil {
			s.logger.Error("could not load scheda", "scheda", s.id, "error", msg.err)
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.scheda = msg.scheda
		s.manifest = msg.manifest
		s.buildMenu()
		for _, sec := range s.scheda.Theory.Sections {
			if !sec.Type.Known() {
				s.logger.Warn("skipping unknown theory section", "scheda", s.id, "type", string(sec.Type))
			}
		}
		if len(s.scheda.Theory.Sections) == 0 {
			s.tab = tabExercises
		} else {
			s.openTheory()
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab", "left", "right":
			if s.scheda == nil {
				return s, nil
			}
			if s.tab == tabTheory {
				s.tab = tabExercises
			} else {
				s.openTheory()
			}
			return s, nil
		case "[":
			return s, s.neighbour(true)
		case "]":
			return s, s.neighbour(false)
		}

		if s.tab == tabTheory {
			switch msg.String() {
			case "up", "k":
				s.offset--
			case "down", "j":
				s.offset++
			case "pgup":
				s.offset -= 10
			case "pgdown", "space":
				s.offset += 10
			}
			return s, nil
		}

		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SchedaScreen) openTheory() {
	s.tab = tabTheory
	s.store.RecordTheoryViewed(context.Background(), s.id)
}

func (s *SchedaScreen) neighbour(previous bool) tea.Cmd {
	if s.manifest == nil {
		return nil
	}
	prev, next := content.Neighbours(s.manifest, s.id)
	target := next
	if previous {
		target = prev
	}
	if target == "" {
		return nil
	}
	scr := New(s.loader, s.store, s.logger, target)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} }
}

func (s *SchedaScreen) buildMenu() {
	selected := s.menu.Selected
	items := make([]components.MenuItem, 0, len(s.scheda.Exercises))
	for i, e := range s.scheda.Exercises {
		idx := i
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Esercizio %s · %s", e.Number, e.Kind().DisplayName()),
			Detail: s.exerciseStatus(e.ID),
			Action: func() tea.Cmd {
				scr := exscreen.New(s.scheda, s.id, idx, s.store, s.logger)
				return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
			},
		})
	}
	s.menu = components.NewMenu(items)
	if selected < len(items) {
		s.menu.Selected = selected
	}
}

func (s *SchedaScreen) exerciseStatus(exerciseID string) string {
	r, ok := s.store.ExerciseResult(s.id, exerciseID)
	switch {
	case !ok:
		return theme.Hint.Render("da fare")
	case r.OpenEnded():
		return theme.Correct.Render("✓ fatto")
	case r.Score == r.Total:
		return theme.Correct.Render(fmt.Sprintf("✓ %d/%d", r.Score, r.Total))
	default:
		return theme.Highlight.Render(fmt.Sprintf("%d/%d", r.Score, r.Total))
	}
}

func (s *SchedaScreen) View(width, height int) string {
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

	head := theme.Title.Render(s.scheda.Meta.Title)
	if s.scheda.Meta.Subtitle != "" {
		head += "\n" + theme.Subtitle.Render(s.scheda.Meta.Subtitle)
	}
	head += "\n" + s.renderTabs() + "\n"

	bodyHeight := max(height-lipgloss.Height(head), 1)
	var body string
	if s.tab == tabTheory {
		body, s.offset = layout.Scroll(renderTheory(s.scheda.Theory, width), s.offset, bodyHeight)
	} else {
		body, _ = layout.Scroll(s.menu.View(), s.menu.SelectedLine()-bodyHeight+1, bodyHeight)
	}
	return head + "\n" + body
}

func (s *SchedaScreen) renderTabs() string {
	theory, exercises := theme.TabInactive, theme.TabInactive
	if s.tab == tabTheory {
		theory = theme.TabActive
	} else {
		exercises = theme.TabActive
	}
	state, _ := s.store.SchedaState(s.id)
	return theory.Render("Teoria") +
		exercises.Render(fmt.Sprintf("Esercizi (%d/%d)", state.Recorded(), len(s.scheda.Exercises)))
}
