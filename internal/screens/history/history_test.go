package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/store"
)

type fakeSource struct {
	events []store.AttemptEvent
	err    error
	opts   store.QueryOpts
}

func (f *fakeSource) Recent(_ context.Context, opts store.QueryOpts) ([]store.AttemptEvent, error) {
	f.opts = opts
	return f.events, f.err
}

func event(seq int64, scheda, ex string, score, total int) store.AttemptEvent {
	return store.AttemptEvent{
		ID:       "id",
		Sequence: seq,
		Attempt: progress.Attempt{
			SchedaID: scheda, ExerciseID: ex, Score: score, Total: total,
			At: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestHistoryLoadsAttempts(t *testing.T) {
	src := &fakeSource{events: []store.AttemptEvent{
		event(2, "1", "1-1", 2, 3),
		event(1, "2", "2-1", 2, 2),
	}}
	s := New(src, nil)
	s.Update(s.Init()())

	if src.opts.Limit != Limit {
		t.Errorf("limit = %d, want %d", src.opts.Limit, Limit)
	}
	view := s.View(100, 30)
	for _, want := range []string{"1-1", "2/3", "2-1", "2/2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryExpandDescribesExercise(t *testing.T) {
	src := &fakeSource{events: []store.AttemptEvent{event(7, "1", "1-1", 3, 3)}}
	s := New(src, content.NewLoader(content.Embedded()))
	s.Update(s.Init()())
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := s.View(120, 30)
	if !strings.Contains(view, "Il verbo essere") {
		t.Error("expected scheda title in expanded details")
	}
	if !strings.Contains(view, "#7") {
		t.Error("expected sequence number in expanded details")
	}
}

func TestHistoryEmpty(t *testing.T) {
	s := New(&fakeSource{}, nil)
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "Nessun esercizio") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryError(t *testing.T) {
	s := New(&fakeSource{err: errors.New("disk full")}, nil)
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "disk full") {
		t.Error("expected error message")
	}
}

func TestHistoryEscPops(t *testing.T) {
	s := New(&fakeSource{}, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected pop command on Esc")
	}
}
