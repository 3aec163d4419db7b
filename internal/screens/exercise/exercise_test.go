package exercise

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/italienapp/italienapp/internal/answer"
	"github.com/italienapp/italienapp/internal/content"
	ex "github.com/italienapp/italienapp/internal/exercise"
	"github.com/italienapp/italienapp/internal/progress"
	"github.com/italienapp/italienapp/internal/router"
)

func testScheda() *content.Scheda {
	return &content.Scheda{
		Meta: content.Meta{ID: "1", Title: "Il verbo essere"},
		Exercises: []ex.Exercise{
			{ID: "es1", Number: "1", Body: &ex.FillInBlank{Items: []ex.FillInBlankItem{
				{Before: "Io ", After: " italiano.", Answer: answer.Single("sono")},
				{Before: "Tu ", After: " stanco?", Answer: answer.Single("sei")},
				{Before: "Lei ", After: " qui.", Answer: answer.OneOf("è", "e'")},
			}}},
			{ID: "es2", Number: "2", Body: &ex.MultipleChoice{Items: []ex.ChoiceItem{
				{Prompt: "Noi ___ amici.", Options: []string{"siamo", "sono", "siete"}, Answer: answer.Single("siamo")},
			}}},
			{ID: "es3", Number: "3", Body: &ex.SentenceCompletion{Items: []ex.Sentence{
				{Segments: []ex.Segment{
					{Text: "Ieri "},
					{Blank: true, Answer: answer.Single("sono")},
					{Text: " andato a "},
					{Blank: true, Answer: answer.Single("Roma")},
				}},
			}}},
			{ID: "es4", Number: "4", Body: &ex.TableCompletion{
				Headers: []string{"Persona", "Essere"},
				Rows: []ex.Row{
					{Cells: []ex.Cell{{Value: "io"}, {Editable: true, Answer: answer.Single("sono")}}},
					{Cells: []ex.Cell{{Value: "tu"}, {Editable: true, Answer: answer.Single("sei")}}},
				},
			}},
			{ID: "es5", Number: "5", Body: &ex.Matching{
				Left:  []string{"cane", "gatto", "topo"},
				Right: []string{"dog", "cat"},
				Pairs: []ex.Pair{{Left: 0, Right: 0}, {Left: 1, Right: 1}},
			}},
			{ID: "es6", Number: "6", Body: &ex.OpenEnded{SuggestedAnswer: "Mi chiamo Anna."}},
		},
	}
}

func newTestScreen(t *testing.T, index int) (*ExerciseScreen, *progress.Store) {
	t.Helper()
	st := progress.Open(context.Background(), progress.NewMemoryBackend())
	s := New(testScheda(), "1", index, st, nil)
	s.Init()
	return s, st
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(s *ExerciseScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestFormSolutionsScorePerfectly(t *testing.T) {
	for _, e := range testScheda().Exercises {
		if !e.Gradable() {
			continue
		}
		f := NewForm(e)
		f.Apply(ex.Solutions(e))
		res, err := ex.Score(e, f.Input(), true)
		if err != nil {
			t.Fatalf("%s: Score: %v", e.ID, err)
		}
		if !res.Perfect() {
			t.Errorf("%s: solutions scored %d/%d", e.ID, res.Score, res.Total)
		}
	}
}

func TestFormFieldCounts(t *testing.T) {
	sc := testScheda()
	want := []int{3, 1, 2, 2, 3, 1}
	for i, e := range sc.Exercises {
		if got := NewForm(e).Len(); got != want[i] {
			t.Errorf("%s: %d fields, want %d", e.ID, got, want[i])
		}
	}
}

func TestFormFocusWraps(t *testing.T) {
	f := NewForm(testScheda().Exercises[0])
	f.Prev()
	if f.Focused() != 2 {
		t.Errorf("Prev from first field = %d, want 2", f.Focused())
	}
	f.Next()
	if f.Focused() != 0 {
		t.Errorf("Next from last field = %d, want 0", f.Focused())
	}
}

func TestFormMatchingInput(t *testing.T) {
	f := NewForm(testScheda().Exercises[4])
	f.fields[0].picker.Selected = 1
	f.fields[2].picker.Selected = 0

	in := f.Input()
	if len(in.Matches) != 2 || in.Matches[0] != 1 || in.Matches[2] != 0 {
		t.Errorf("Matches = %v", in.Matches)
	}
	if _, ok := in.Matches[1]; ok {
		t.Error("unselected row should be absent")
	}
}

func TestCheckRecordsResult(t *testing.T) {
	s, st := newTestScreen(t, 0)

	typeText(s, "Sono")
	s.Update(specialKey(tea.KeyTab))
	typeText(s, "è")
	s.Update(specialKey(tea.KeyTab))
	typeText(s, "e")
	s.Update(ctrl('s'))

	if s.result == nil || s.result.Score != 2 || s.result.Total != 3 {
		t.Fatalf("result = %+v, want 2/3", s.result)
	}
	r, ok := st.ExerciseResult("1", "es1")
	if !ok {
		t.Fatal("expected a stored result")
	}
	if r.Score != 2 || r.Total != 3 || r.Attempts != 1 {
		t.Errorf("stored = %+v", r)
	}
	if view := s.View(100, 40); !strings.Contains(view, "2/3 corrette") {
		t.Error("expected score badge in view")
	}
}

func TestCheckTwiceIsIgnored(t *testing.T) {
	s, st := newTestScreen(t, 0)
	s.Update(ctrl('s'))
	s.Update(ctrl('s'))

	r, _ := st.ExerciseResult("1", "es1")
	if r.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", r.Attempts)
	}
}

func TestShowSolutionsDoesNotPersist(t *testing.T) {
	s, st := newTestScreen(t, 0)
	s.Update(ctrl('o'))

	if s.result == nil || !s.result.Perfect() {
		t.Fatalf("result = %+v, want perfect", s.result)
	}
	if _, ok := st.ExerciseResult("1", "es1"); ok {
		t.Error("showing solutions must not record a result")
	}
	if got := s.form.fields[0].text.Value(); got != "sono" {
		t.Errorf("field 0 = %q, want %q", got, "sono")
	}
}

func TestRetryClearsForm(t *testing.T) {
	s, _ := newTestScreen(t, 0)
	typeText(s, "sono")
	s.Update(ctrl('s'))
	s.Update(ctrl('r'))

	if s.form.Checked() {
		t.Error("form should not be checked after retry")
	}
	if s.result != nil {
		t.Error("result should be cleared")
	}
	if got := s.form.fields[0].text.Value(); got != "" {
		t.Errorf("field 0 = %q, want empty", got)
	}
}

func TestMultipleChoiceStates(t *testing.T) {
	s, st := newTestScreen(t, 1)
	s.Update(keyPress('2'))
	s.Update(ctrl('s'))

	states := s.form.fields[0].picker.States
	want := []ex.OptionState{ex.OptionCorrectAnswer, ex.OptionIncorrect, ex.OptionNeutral}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("state[%d] = %v, want %v", i, states[i], want[i])
		}
	}
	r, _ := st.ExerciseResult("1", "es2")
	if r.Score != 0 || r.Total != 1 {
		t.Errorf("stored = %d/%d, want 0/1", r.Score, r.Total)
	}
}

func TestOpenEndedDone(t *testing.T) {
	s, st := newTestScreen(t, 5)
	typeText(s, "Mi chiamo Luca.")
	s.Update(ctrl('s'))

	r, ok := st.ExerciseResult("1", "es6")
	if !ok || !r.OpenEnded() {
		t.Fatalf("stored = %+v, want attempted", r)
	}
	if view := s.View(100, 40); !strings.Contains(view, "Mi chiamo Anna.") {
		t.Error("expected suggested answer after marking done")
	}
}

func TestNextExerciseReplacesScreen(t *testing.T) {
	s, _ := newTestScreen(t, 0)
	_, cmd := s.Update(ctrl('n'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if got := msg.Screen.(*ExerciseScreen).exercise.ID; got != "es2" {
		t.Errorf("next exercise = %q, want es2", got)
	}

	last, _ := newTestScreen(t, 5)
	if _, cmd := last.Update(ctrl('n')); cmd != nil {
		t.Error("expected no command past the last exercise")
	}
}

func TestViewRendersEveryKind(t *testing.T) {
	for i, e := range testScheda().Exercises {
		s, _ := newTestScreen(t, i)
		if view := s.View(100, 40); !strings.Contains(view, "Esercizio "+e.Number.String()) {
			t.Errorf("%s: missing heading", e.ID)
		}
	}
}
