package exercise

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/italienapp/italienapp/internal/content"
	ex "github.com/italienapp/italienapp/internal/exercise"
	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/router"
	"github.com/italienapp/italienapp/internal/screen"
	"github.com/italienapp/italienapp/internal/ui/components"
	"github.com/italienapp/italienapp/internal/ui/layout"
)

// ExerciseScreen lets the learner answer one exercise of a scheda.
type ExerciseScreen struct {
	scheda   *content.Scheda
	schedaID string
	index    int
	exercise ex.Exercise
	store    *progress.Store
	logger   *slog.Logger

	form      *Form
	result    *ex.Result
	solutions bool
	done      bool
	previous  *progress.ExerciseResult
	errMsg    string

	offset int
	follow bool
}

var _ screen.Screen = (*ExerciseScreen)(nil)
var _ screen.KeyHintProvider = (*ExerciseScreen)(nil)

// New creates the screen for the exercise at index within sc.
func New(sc *content.Scheda, schedaID string, index int, store *progress.Store, logger *slog.Logger) *ExerciseScreen {
	if logger == nil {
		logger = slog.Default()
	}
	e := sc.Exercises[index]
	s := &ExerciseScreen{
		scheda:   sc,
		schedaID: schedaID,
		index:    index,
		exercise: e,
		store:    store,
		logger:   logger,
		form:     NewForm(e),
		follow:   true,
	}
	if r, ok := store.ExerciseResult(schedaID, e.ID); ok {
		s.previous = &r
		s.done = r.OpenEnded()
	}
	return s
}

func (s *ExerciseScreen) Init() tea.Cmd {
	return s.form.setFocus(0)
}

func (s *ExerciseScreen) Title() string {
	return fmt.Sprintf("Scheda %s · Esercizio %s", s.scheda.Meta.ID, s.exercise.Number)
}

func (s *ExerciseScreen) gradable() bool {
	return s.exercise.Gradable()
}

func (s *ExerciseScreen) buttons() []components.Button {
	if !s.gradable() {
		return []components.Button{
			components.NewButton("Fatto", "ctrl+s", !s.done),
			components.NewButton("Mostra risposta", "ctrl+o", !s.solutions),
		}
	}
	return []components.Button{
		components.NewButton("Controlla", "ctrl+s", !s.form.Checked()),
		components.NewButton("Riprova", "ctrl+r", s.form.Checked()),
		components.NewButton("Mostra soluzioni", "ctrl+o", !s.solutions),
	}
}

func (s *ExerciseScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Campo"}}
	hints = append(hints, components.Hints(s.buttons()...)...)
	if s.index+1 < len(s.scheda.Exercises) {
		hints = append(hints, layout.KeyHint{Key: "ctrl+n", Description: "Avanti"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Indietro"})
}

func (s *ExerciseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, s.form.Update(msg)
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "down", "enter":
		s.follow = true
		return s, s.form.Next()
	case "shift+tab", "up":
		s.follow = true
		return s, s.form.Prev()
	case "pgdown":
		s.follow = false
		s.offset += 5
		return s, nil
	case "pgup":
		s.follow = false
		s.offset -= 5
		return s, nil
	case "ctrl+s":
		if s.gradable() {
			s.check()
		} else {
			s.markDone()
		}
		return s, nil
	case "ctrl+r":
		if s.gradable() && s.form.Checked() {
			s.result = nil
			s.solutions = false
			s.errMsg = ""
			s.follow = true
			return s, s.form.Reset()
		}
		return s, nil
	case "ctrl+o":
		s.showSolutions()
		return s, nil
	case "ctrl+n":
		return s, s.jump(s.index + 1)
	case "ctrl+p":
		return s, s.jump(s.index - 1)
	}

	return s, s.form.Update(msg)
}

// check scores the current answers and persists the result.
func (s *ExerciseScreen) check() {
	if s.form.Checked() {
		return
	}
	res, ok := s.score(s.form.Input())
	if !ok {
		return
	}
	saved := s.store.RecordExerciseResult(context.Background(), s.schedaID, s.exercise.ID, res.Score, res.Total)
	s.previous = &saved
}

// showSolutions fills in the answer key and shows the verdicts without
// recording anything.
func (s *ExerciseScreen) showSolutions() {
	if s.solutions {
		return
	}
	s.solutions = true
	if !s.gradable() {
		return
	}
	s.form.Reset()
	s.form.Apply(ex.Solutions(s.exercise))
	s.score(s.form.Input())
}

func (s *ExerciseScreen) score(in ex.Input) (ex.Result, bool) {
	strict := s.store.Settings().StrictAccents
	res, err := ex.Score(s.exercise, in, strict)
	if err != nil {
		s.logger.Error("could not score exercise",
			"scheda", s.schedaID, "exercise", s.exercise.ID, "error", err)
		if errors.Is(err, ex.ErrMalformed) {
			s.errMsg = "Esercizio non valido: " + err.Error()
		} else {
			s.errMsg = err.Error()
		}
		return ex.Result{}, false
	}
	s.result = &res
	s.form.SetResult(res, strict)
	s.follow = false
	return res, true
}

func (s *ExerciseScreen) markDone() {
	if s.done {
		return
	}
	s.done = true
	s.store.RecordOpenEndedDone(context.Background(), s.schedaID, s.exercise.ID)
	if r, ok := s.store.ExerciseResult(s.schedaID, s.exercise.ID); ok {
		s.previous = &r
	}
}

func (s *ExerciseScreen) jump(index int) tea.Cmd {
	if index < 0 || index >= len(s.scheda.Exercises) {
		return nil
	}
	next := New(s.scheda, s.schedaID, index, s.store, s.logger)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ExerciseScreen) View(width, height int) string {
	body, focusLine := s.render(width)

	if s.follow && focusLine >= 0 {
		if focusLine < s.offset {
			s.offset = focusLine
		} else if focusLine >= s.offset+height {
			s.offset = focusLine - height + 1
		}
	}

	out, offset := layout.Scroll(body, s.offset, height)
	s.offset = offset
	return out
}
