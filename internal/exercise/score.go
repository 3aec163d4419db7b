package exercise

import (
	"fmt"

	"github.com/italienapp/italienapp/internal/answer"
)

// Score grades in against the exercise's answer key. Every gradable slot
// counts toward Total; empty or missing values are incorrect. Open-ended
// exercises return ErrNotGradable and malformed ones ErrMalformed.
func Score(ex Exercise, in Input, strictAccents bool) (Result, error) {
	if err := ex.Validate(); err != nil {
		return Result{}, err
	}
	res, err := ex.Body.score(in, strictAccents)
	if err != nil {
		return Result{}, fmt.Errorf("exercise %q: %w", ex.ID, err)
	}
	return res, nil
}

// Solutions returns an Input with every slot filled with its display answer.
func Solutions(ex Exercise) Input {
	if ex.Body == nil {
		return Input{}
	}
	return ex.Body.solutions()
}

// scoreItems grades kinds with one slot per item. answerAt returns the
// accepted answer of item i.
func scoreItems(n int, answerAt func(i int) answer.Answer, in Input, strictAccents bool) Result {
	res := Result{Verdicts: make([]Verdict, 0, n)}
	for i := 0; i < n; i++ {
		expected := answerAt(i)
		given := in.item(i)
		res.add(Verdict{
			Slot:     Slot{Item: i, Part: -1},
			Given:    given,
			Correct:  answer.Matches(given, expected, strictAccents),
			Graded:   true,
			Expected: expected.Display(),
		})
	}
	return res
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
}

// EmptyAnswers returns the slots whose accepted answer has an alternative
// that normalizes to the empty string. No input can ever match those.
func EmptyAnswers(ex Exercise) []Slot {
	var slots []Slot
	check := func(a answer.Answer, s Slot) {
		if a.HasEmpty() {
			slots = append(slots, s)
		}
	}

	switch b := ex.Body.(type) {
	case *FillInBlank:
		for i, it := range b.Items {
			check(it.Answer, Slot{Item: i, Part: -1})
		}
	case *MultipleChoice:
		for i, it := range b.Items {
			check(it.Answer, Slot{Item: i, Part: -1})
		}
	case *Transformation:
		for i, it := range b.Items {
			check(it.Answer, Slot{Item: i, Part: -1})
		}
	case *SentenceRewriting:
		for i, it := range b.Items {
			check(it.Answer, Slot{Item: i, Part: -1})
		}
	case *SentenceCompletion:
		for i, it := range b.Items {
			for j, seg := range it.Segments {
				if seg.Blank {
					check(seg.Answer, Slot{Item: i, Part: j})
				}
			}
		}
	case *TableCompletion:
		for r, row := range b.Rows {
			for c, cell := range row.Cells {
				if cell.Editable {
					check(cell.Answer, Slot{Item: r, Part: c})
				}
			}
		}
	}
	return slots
}
