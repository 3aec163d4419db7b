package exercise

import (
	tea "charm.land/bubbletea/v2"

	ex "github.com/italienapp/italienapp/internal/exercise"
	"github.com/italienapp/italienapp/internal/ui/components"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldChoice
)

// field is one focusable input. Slot addresses it the same way scorer
// verdicts do.
type field struct {
	kind   fieldKind
	slot   ex.Slot
	text   components.TextInput
	picker components.Picker

	verdict *ex.Verdict
}

func (f *field) value() string {
	if f.kind == fieldChoice {
		return f.picker.Value()
	}
	return f.text.Value()
}

// Form holds the editable state of one exercise.
type Form struct {
	exercise ex.Exercise
	fields   []*field
	bySlot   map[ex.Slot]*field
	focus    int
	checked  bool
}

// NewForm builds one field per gradable slot, or a single free-text field
// for open-ended exercises.
func NewForm(e ex.Exercise) *Form {
	f := &Form{exercise: e, bySlot: make(map[ex.Slot]*field)}

	switch b := e.Body.(type) {
	case *ex.FillInBlank:
		for i := range b.Items {
			f.addText(ex.Slot{Item: i, Part: -1}, 20)
		}
	case *ex.Transformation:
		for i := range b.Items {
			f.addText(ex.Slot{Item: i, Part: -1}, 50)
		}
	case *ex.SentenceRewriting:
		for i := range b.Items {
			f.addText(ex.Slot{Item: i, Part: -1}, 50)
		}
	case *ex.MultipleChoice:
		for i, it := range b.Items {
			f.addChoice(ex.Slot{Item: i, Part: -1}, it.Options)
		}
	case *ex.SentenceCompletion:
		for i, it := range b.Items {
			for j, seg := range it.Segments {
				if seg.Blank {
					f.addText(ex.Slot{Item: i, Part: j}, 16)
				}
			}
		}
	case *ex.TableCompletion:
		for r, row := range b.Rows {
			for c, cell := range row.Cells {
				if cell.Editable {
					f.addText(ex.Slot{Item: r, Part: c}, 14)
				}
			}
		}
	case *ex.Matching:
		for l := range b.Left {
			f.addChoice(ex.Slot{Item: l, Part: -1}, b.Right)
		}
	case *ex.OpenEnded:
		f.addText(ex.Slot{Item: 0, Part: -1}, 60)
	}

	f.setFocus(0)
	return f
}

func (f *Form) addText(slot ex.Slot, width int) {
	fl := &field{kind: fieldText, slot: slot, text: components.NewTextInput("", width)}
	f.fields = append(f.fields, fl)
	f.bySlot[slot] = fl
}

func (f *Form) addChoice(slot ex.Slot, options []string) {
	fl := &field{kind: fieldChoice, slot: slot, picker: components.NewPicker(options)}
	f.fields = append(f.fields, fl)
	f.bySlot[slot] = fl
}

// Len returns the number of fields.
func (f *Form) Len() int {
	return len(f.fields)
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int {
	return f.focus
}

// Checked reports whether verdicts are shown.
func (f *Form) Checked() bool {
	return f.checked
}

func (f *Form) setFocus(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	i = min(max(i, 0), len(f.fields)-1)
	for _, fl := range f.fields {
		fl.text.Blur()
		fl.picker.Focused = false
	}
	f.focus = i
	fl := f.fields[i]
	if fl.kind == fieldChoice {
		fl.picker.Focused = true
		return nil
	}
	return fl.text.Focus()
}

// Next moves focus to the next field, wrapping around.
func (f *Form) Next() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.setFocus((f.focus + 1) % len(f.fields))
}

// Prev moves focus to the previous field, wrapping around.
func (f *Form) Prev() tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	return f.setFocus((f.focus - 1 + len(f.fields)) % len(f.fields))
}

// Update forwards msg to the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	fl := f.fields[f.focus]
	var cmd tea.Cmd
	if fl.kind == fieldChoice {
		fl.picker, cmd = fl.picker.Update(msg)
	} else {
		fl.text, cmd = fl.text.Update(msg)
	}
	return cmd
}

// Input collects the current values in scorer layout.
func (f *Form) Input() ex.Input {
	var in ex.Input
	switch b := f.exercise.Body.(type) {
	case *ex.FillInBlank, *ex.Transformation, *ex.SentenceRewriting, *ex.MultipleChoice:
		in.Items = make([]string, len(f.fields))
		for _, fl := range f.fields {
			in.Items[fl.slot.Item] = fl.value()
		}
	case *ex.SentenceCompletion:
		in.Blanks = make([][]string, len(b.Items))
		for i, it := range b.Items {
			in.Blanks[i] = make([]string, len(it.Segments))
		}
		for _, fl := range f.fields {
			in.Blanks[fl.slot.Item][fl.slot.Part] = fl.value()
		}
	case *ex.TableCompletion:
		in.Cells = make([][]string, len(b.Rows))
		for r, row := range b.Rows {
			in.Cells[r] = make([]string, len(row.Cells))
		}
		for _, fl := range f.fields {
			in.Cells[fl.slot.Item][fl.slot.Part] = fl.value()
		}
	case *ex.Matching:
		in.Matches = make(map[int]int)
		for _, fl := range f.fields {
			if fl.picker.Selected >= 0 {
				in.Matches[fl.slot.Item] = fl.picker.Selected
			}
		}
	}
	return in
}

// Text returns the free-text value of an open-ended form.
func (f *Form) Text() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[0].value()
}

// Apply fills the fields from in, the inverse of Input.
func (f *Form) Apply(in ex.Input) {
	for _, fl := range f.fields {
		var v string
		switch {
		case in.Matches != nil:
			fl.picker.Selected = -1
			if r, ok := in.Matches[fl.slot.Item]; ok {
				fl.picker.Selected = r
			}
			continue
		case in.Blanks != nil:
			if fl.slot.Item < len(in.Blanks) && fl.slot.Part < len(in.Blanks[fl.slot.Item]) {
				v = in.Blanks[fl.slot.Item][fl.slot.Part]
			}
		case in.Cells != nil:
			if fl.slot.Item < len(in.Cells) && fl.slot.Part < len(in.Cells[fl.slot.Item]) {
				v = in.Cells[fl.slot.Item][fl.slot.Part]
			}
		default:
			if fl.slot.Item < len(in.Items) {
				v = in.Items[fl.slot.Item]
			}
		}
		if fl.kind == fieldChoice {
			fl.picker.Select(v)
		} else {
			fl.text.SetValue(v)
		}
	}
}

// SetResult shows the verdicts of res and locks the fields.
func (f *Form) SetResult(res ex.Result, strictAccents bool) {
	f.checked = true
	for i := range res.Verdicts {
		v := res.Verdicts[i]
		fl, ok := f.bySlot[v.Slot]
		if !ok {
			continue
		}
		fl.verdict = &v

		switch b := f.exercise.Body.(type) {
		case *ex.MultipleChoice:
			fl.picker.States = ex.OptionStates(b.Items[v.Slot.Item], fl.picker.Selected, strictAccents)
		case *ex.Matching:
			fl.picker.States = matchStates(b, v.Slot.Item, fl.picker.Selected)
		default:
			fl.text.Submit(v.Correct)
		}
	}
	for _, fl := range f.fields {
		fl.text.Blur()
	}
}

// matchStates classifies the right-hand options of one matching row.
// Rows without a defined pair only show the selection.
func matchStates(b *ex.Matching, left, selected int) []ex.OptionState {
	states := make([]ex.OptionState, len(b.Right))
	want, graded := b.Correct(left)
	for i := range states {
		switch {
		case !graded:
			continue
		case i == selected && i == want:
			states[i] = ex.OptionCorrect
		case i == selected:
			states[i] = ex.OptionIncorrect
		case i == want:
			states[i] = ex.OptionCorrectAnswer
		}
	}
	return states
}

// Reset clears every value and verdict.
func (f *Form) Reset() tea.Cmd {
	f.checked = false
	for _, fl := range f.fields {
		fl.verdict = nil
		fl.text.Reset()
		fl.picker.Selected = -1
		fl.picker.States = nil
	}
	return f.setFocus(0)
}

// field returns the field at slot.
func (f *Form) field(slot ex.Slot) (*field, bool) {
	fl, ok := f.bySlot[slot]
	return fl, ok
}
