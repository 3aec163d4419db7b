package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/italienapp/italienapp/internal/content"
	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/router"
	"github.com/italienapp/italienapp/internal/screens/scheda"
)

func loadedHome(t *testing.T, st *progress.Store) *HomeScreen {
	t.Helper()
	h := New(content.NewLoader(content.Embedded()), st, nil, nil)
	h.Update(h.Init()())
	if h.errMsg != "" {
		t.Fatalf("load failed: %s", h.errMsg)
	}
	return h
}

func TestHomeListsCategoriesAndSchede(t *testing.T) {
	st := progress.Open(context.Background(), progress.NewMemoryBackend())
	h := loadedHome(t, st)

	view := h.View(100, 60)
	for _, want := range []string{"Verbi", "Pronomi", "Il verbo essere", "I pronomi diretti", "Impostazioni", "0/3 completate"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Continua") {
		t.Error("no continue entry expected without activity")
	}
}

func TestCategoryOpensFirstScheda(t *testing.T) {
	st := progress.Open(context.Background(), progress.NewMemoryBackend())
	h := loadedHome(t, st)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*scheda.SchedaScreen); !ok {
		t.Errorf("pushed %T, want *SchedaScreen", msg.Screen)
	}
	if got := msg.Screen.Title(); got != "Scheda 1" {
		t.Errorf("title = %q, want %q", got, "Scheda 1")
	}
}

func TestContinueEntryAfterActivity(t *testing.T) {
	st := progress.Open(context.Background(), progress.NewMemoryBackend())
	st.RecordExerciseResult(context.Background(), "2", "2-1", 1, 2)
	h := loadedHome(t, st)

	view := h.View(100, 60)
	if !strings.Contains(view, "Continua: Scheda 2") {
		t.Error("expected continue entry for the last active scheda")
	}
	if !strings.Contains(view, "1 in corso") {
		t.Error("expected in-progress count")
	}
}

func TestRefreshUpdatesStatus(t *testing.T) {
	st := progress.Open(context.Background(), progress.NewMemoryBackend())
	h := loadedHome(t, st)

	for _, id := range []string{"19bis-1", "19bis-2"} {
		st.RecordExerciseResult(context.Background(), "19bis", id, 1, 1)
	}
	h.Refresh()

	if view := h.View(100, 60); !strings.Contains(view, "1/3 completate") {
		t.Error("expected overall progress to include the completed scheda")
	}
}

func TestHistoryDisabledWithoutAttemptLog(t *testing.T) {
	st := progress.Open(context.Background(), progress.NewMemoryBackend())
	h := loadedHome(t, st)
	for _, it := range h.menu.Items {
		if it.Label == "Cronologia" && !it.Disabled {
			t.Error("history should be disabled without an attempt log")
		}
	}
}
