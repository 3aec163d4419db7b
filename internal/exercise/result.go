package exercise

// GoodThreshold is the score ratio at or above which a result is shown as good.
const GoodThreshold = 0.8

// Slot addresses one gradable position. Part is the segment index for
// sentence-completion, the column for table-completion and -1 otherwise.
type Slot struct {
	Item int
	Part int
}

// Verdict is the outcome for one slot.
type Verdict struct {
	Slot Slot

	// Given is the learner's value (for matching, the chosen right text).
	Given string

	// Correct is true when the value matched the accepted answer.
	Correct bool

	// Graded is false for matching rows that have no defined pair; they are
	// shown but never counted.
	Graded bool

	// Expected is the display answer used for corrections.
	Expected string
}

// Result is the tally for one check of an exercise.
type Result struct {
	Score    int
	Total    int
	Verdicts []Verdict
}

// Ratio returns Score/Total, or 0 for an empty exercise.
func (r Result) Ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total)
}

// Good reports whether the result reaches GoodThreshold.
func (r Result) Good() bool {
	return r.Total > 0 && r.Ratio() >= GoodThreshold
}

// Perfect reports whether every counted slot was correct.
func (r Result) Perfect() bool {
	return r.Total > 0 && r.Score == r.Total
}

func (r *Result) add(v Verdict) {
	r.Verdicts = append(r.Verdicts, v)
	if !v.Graded {
		return
	}
	r.Total++
	if v.Correct {
		r.Score++
	}
}
