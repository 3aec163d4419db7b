package exercise

import "github.com/italienapp/italienapp/internal/answer"

func (b *TableCompletion) validate() error {
	if b.Rows == nil {
		return malformed("missing rows")
	}
	for r, row := range b.Rows {
		if row.Cells == nil {
			return malformed("row %d: missing cells", r)
		}
		for c, cell := range row.Cells {
			if cell.Editable && cell.Answer.IsZero() {
				return malformed("row %d cell %d: editable cell without answer", r, c)
			}
		}
	}
	return nil
}

// score walks editable cells row-major.
func (b *TableCompletion) score(in Input, strictAccents bool) (Result, error) {
	var res Result
	for r, row := range b.Rows {
		for c, cell := range row.Cells {
			if !cell.Editable {
				continue
			}
			given := in.cell(r, c)
			res.add(Verdict{
				Slot:     Slot{Item: r, Part: c},
				Given:    given,
				Correct:  answer.Matches(given, cell.Answer, strictAccents),
				Graded:   true,
				Expected: cell.Answer.Display(),
			})
		}
	}
	return res, nil
}

func (b *TableCompletion) solutions() Input {
	in := Input{Cells: make([][]string, len(b.Rows))}
	for r, row := range b.Rows {
		in.Cells[r] = make([]string, len(row.Cells))
		for c, cell := range row.Cells {
			if cell.Editable {
				in.Cells[r][c] = cell.Answer.Display()
			}
		}
	}
	return in
}
