package exercise

func (b *Matching) validate() error {
	switch {
	case b.Left == nil:
		return malformed("missing left items")
	case b.Right == nil:
		return malformed("missing right items")
	case b.Pairs == nil:
		return malformed("missing pairs")
	}

	seenLeft := make(map[int]bool, len(b.Pairs))
	seenRight := make(map[int]bool, len(b.Pairs))
	for i, p := range b.Pairs {
		if p.Left < 0 || p.Left >= len(b.Left) {
			return malformed("pair %d: left index %d out of range", i, p.Left)
		}
		if p.Right < 0 || p.Right >= len(b.Right) {
			return malformed("pair %d: right index %d out of range", i, p.Right)
		}
		if seenLeft[p.Left] {
			return malformed("pair %d: left index %d paired twice", i, p.Left)
		}
		if seenRight[p.Right] {
			return malformed("pair %d: right index %d paired twice", i, p.Right)
		}
		seenLeft[p.Left] = true
		seenRight[p.Right] = true
	}
	return nil
}

// score produces a verdict for every left item, but only left items with a
// defined pair are graded; Total equals len(Pairs).
func (b *Matching) score(in Input, _ bool) (Result, error) {
	correct := b.correctMap()

	var res Result
	for l := range b.Left {
		v := Verdict{Slot: Slot{Item: l, Part: -1}}

		chosen, selected := in.match(l)
		if selected && chosen >= 0 && chosen < len(b.Right) {
			v.Given = b.Right[chosen]
		}

		if want, ok := correct[l]; ok {
			v.Graded = true
			v.Expected = b.Right[want]
			v.Correct = selected && chosen == want
		}
		res.add(v)
	}
	return res, nil
}

func (b *Matching) solutions() Input {
	in := Input{Matches: make(map[int]int, len(b.Pairs))}
	for _, p := range b.Pairs {
		in.Matches[p.Left] = p.Right
	}
	return in
}

// Correct returns the right index paired with left, if any.
func (b *Matching) Correct(left int) (int, bool) {
	for _, p := range b.Pairs {
		if p.Left == left {
			return p.Right, true
		}
	}
	return 0, false
}

func (b *Matching) correctMap() map[int]int {
	m := make(map[int]int, len(b.Pairs))
	for _, p := range b.Pairs {
		m[p.Left] = p.Right
	}
	return m
}
