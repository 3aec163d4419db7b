package exercise

// Input holds the values a learner entered, addressed like the exercise's
// answer key. Only the field matching the exercise kind is read; missing
// entries count as empty answers.
type Input struct {
	// Items holds one value per item for fill-in-blank, transformation and
	// sentence-rewriting, and the selected option text for multiple-choice
	// ("" when nothing is selected).
	Items []string

	// Blanks holds sentence-completion values as [item][segment], using the
	// segment index within the item (static segments are ignored).
	Blanks [][]string

	// Cells holds table-completion values as [row][column].
	Cells [][]string

	// Matches maps a left index to the chosen right index. Absent keys are
	// unselected.
	Matches map[int]int
}

func (in Input) item(i int) string {
	if i < len(in.Items) {
		return in.Items[i]
	}
	return ""
}

func (in Input) blank(item, segment int) string {
	if item < len(in.Blanks) && segment < len(in.Blanks[item]) {
		return in.Blanks[item][segment]
	}
	return ""
}

func (in Input) cell(row, col int) string {
	if row < len(in.Cells) && col < len(in.Cells[row]) {
		return in.Cells[row][col]
	}
	return ""
}

func (in Input) match(left int) (int, bool) {
	r, ok := in.Matches[left]
	return r, ok
}
