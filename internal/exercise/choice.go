package exercise

import "github.com/italienapp/italienapp/internal/answer"

func (b *MultipleChoice) validate() error {
	if b.Items == nil {
		return malformed("missing items")
	}
	for i, it := range b.Items {
		if len(it.Options) == 0 {
			return malformed("item %d: missing options", i)
		}
		if it.Answer.IsZero() {
			return malformed("item %d: missing answer", i)
		}
	}
	return nil
}

// score compares the selected option text with the answer. An answer that
// matches none of the options can never be marked correct; this is left to
// content validation to report, not repaired here.
func (b *MultipleChoice) score(in Input, strictAccents bool) (Result, error) {
	return scoreItems(len(b.Items), func(i int) answer.Answer { return b.Items[i].Answer }, in, strictAccents), nil
}

// solutions selects, per item, the first option accepted by the answer.
// Items whose answer matches no option stay unselected.
func (b *MultipleChoice) solutions() Input {
	in := Input{Items: make([]string, len(b.Items))}
	for i, it := range b.Items {
		if idx := it.CorrectOption(true); idx >= 0 {
			in.Items[i] = it.Options[idx]
		}
	}
	return in
}

// CorrectOption returns the index of the first option accepted by the
// item's answer, or -1 when no option matches.
func (it ChoiceItem) CorrectOption(strictAccents bool) int {
	for i, opt := range it.Options {
		if answer.Matches(opt, it.Answer, strictAccents) {
			return i
		}
	}
	return -1
}

// OptionState classifies one option after checking.
type OptionState int

const (
	OptionNeutral         OptionState = iota
	OptionCorrect                     // selected and correct
	OptionIncorrect                   // selected and wrong
	OptionCorrectAnswer               // not selected, but it was the right one
)

// OptionStates classifies every option of it given the selected option
// index (-1 for none).
func OptionStates(it ChoiceItem, selected int, strictAccents bool) []OptionState {
	states := make([]OptionState, len(it.Options))

	selectedCorrect := false
	if selected >= 0 && selected < len(it.Options) {
		selectedCorrect = answer.Matches(it.Options[selected], it.Answer, strictAccents)
	}

	for i, opt := range it.Options {
		accepted := answer.Matches(opt, it.Answer, strictAccents)
		switch {
		case i == selected && selectedCorrect:
			states[i] = OptionCorrect
		case i == selected:
			states[i] = OptionIncorrect
		case accepted && !selectedCorrect:
			states[i] = OptionCorrectAnswer
		}
	}
	return states
}
