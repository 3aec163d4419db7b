package exercise

import "github.com/italienapp/italienapp/internal/answer"

func (b *SentenceCompletion) validate() error {
	if b.Items == nil {
		return malformed("missing items")
	}
	for i, it := range b.Items {
		if it.Segments == nil {
			return malformed("item %d: missing segments", i)
		}
		for j, seg := range it.Segments {
			if seg.Blank && seg.Answer.IsZero() {
				return malformed("item %d segment %d: blank without answer", i, j)
			}
		}
	}
	return nil
}

// score flattens the blanks of all sentences in order; Total is the number
// of blanks, not of sentences.
func (b *SentenceCompletion) score(in Input, strictAccents bool) (Result, error) {
	var res Result
	for i, it := range b.Items {
		for j, seg := range it.Segments {
			if !seg.Blank {
				continue
			}
			given := in.blank(i, j)
			res.add(Verdict{
				Slot:     Slot{Item: i, Part: j},
				Given:    given,
				Correct:  answer.Matches(given, seg.Answer, strictAccents),
				Graded:   true,
				Expected: seg.Answer.Display(),
			})
		}
	}
	return res, nil
}

func (b *SentenceCompletion) solutions() Input {
	in := Input{Blanks: make([][]string, len(b.Items))}
	for i, it := range b.Items {
		in.Blanks[i] = make([]string, len(it.Segments))
		for j, seg := range it.Segments {
			if seg.Blank {
				in.Blanks[i][j] = seg.Answer.Display()
			}
		}
	}
	return in
}

// BlankCount returns the number of blanks across all sentences.
func (b *SentenceCompletion) BlankCount() int {
	n := 0
	for _, it := range b.Items {
		for _, seg := range it.Segments {
			if seg.Blank {
				n++
			}
		}
	}
	return n
}
