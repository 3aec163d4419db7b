package exercise

import "github.com/italienapp/italienapp/internal/answer"

// Fill-in-blank, transformation and sentence-rewriting have one slot per
// item and share validateItems, scoreItems and itemSolutions.

func (b *FillInBlank) validate() error {
	return validateItems(b.Items, func(it FillInBlankItem) answer.Answer { return it.Answer })
}

func (b *FillInBlank) score(in Input, strictAccents bool) (Result, error) {
	return scoreItems(len(b.Items), func(i int) answer.Answer { return b.Items[i].Answer }, in, strictAccents), nil
}

func (b *FillInBlank) solutions() Input {
	return itemSolutions(b.Items, func(it FillInBlankItem) answer.Answer { return it.Answer })
}

func (b *Transformation) validate() error {
	return validateItems(b.Items, func(it TransformItem) answer.Answer { return it.Answer })
}

func (b *Transformation) score(in Input, strictAccents bool) (Result, error) {
	return scoreItems(len(b.Items), func(i int) answer.Answer { return b.Items[i].Answer }, in, strictAccents), nil
}

func (b *Transformation) solutions() Input {
	return itemSolutions(b.Items, func(it TransformItem) answer.Answer { return it.Answer })
}

func (b *SentenceRewriting) validate() error {
	return validateItems(b.Items, func(it RewriteItem) answer.Answer { return it.Answer })
}

func (b *SentenceRewriting) score(in Input, strictAccents bool) (Result, error) {
	return scoreItems(len(b.Items), func(i int) answer.Answer { return b.Items[i].Answer }, in, strictAccents), nil
}

func (b *SentenceRewriting) solutions() Input {
	return itemSolutions(b.Items, func(it RewriteItem) answer.Answer { return it.Answer })
}

// validateItems requires the item list and an answer on every item.
func validateItems[T any](items []T, answerOf func(T) answer.Answer) error {
	if items == nil {
		return malformed("missing items")
	}
	for i, it := range items {
		if answerOf(it).IsZero() {
			return malformed("item %d: missing answer", i)
		}
	}
	return nil
}

// itemSolutions fills one value per item with its display answer.
func itemSolutions[T any](items []T, answerOf func(T) answer.Answer) Input {
	in := Input{Items: make([]string, len(items))}
	for i, it := range items {
		in.Items[i] = answerOf(it).Display()
	}
	return in
}
