package phrase

// Seek, Tell (codepoint mode) are defined in phrase.go. SeekUnits/
// TellUnits and SeekCells/TellCells give the same "walk a distance from
// a position, report an absolute offset" pair in the other two
// coordinate systems spec §4.3 requires: Character Units and cells.
// All three must agree that Tell(Seek(whence, n)) == n for any offset
// within bounds (spec §8's phrase coordinate isomorphism property).

// SeekUnits finds the word/codepoint position reached by moving offset
// Character Units from whence.
func (p Phrase[S]) SeekUnits(whence Position, offset int) (Position, int) {
	if offset == 0 || len(p) == 0 {
		return whence, offset
	}

	if offset < 0 {
		remaining := -offset + p.codeToUnit(whence.Word, whence.Code)
		for i := whence.Word; i >= 0; i-- {
			uc := p[i].UnitCount()
			if remaining <= uc {
				return Position{Word: i, Code: p.unitToCode(i, uc-remaining)}, 0
			}
			remaining -= uc
		}
		return Position{Word: 0, Code: 0}, -remaining
	}

	remaining := offset + p.codeToUnit(whence.Word, whence.Code)
	for i := whence.Word; i < len(p); i++ {
		uc := p[i].UnitCount()
		if remaining <= uc {
			return Position{Word: i, Code: p.unitToCode(i, remaining)}, 0
		}
		remaining -= uc
	}
	last := len(p) - 1
	return Position{Word: last, Code: p[last].CodeCount()}, remaining
}

// TellUnits returns the absolute Character Unit offset of position.
func (p Phrase[S]) TellUnits(position Position) int {
	if len(p) == 0 {
		return 0
	}
	offset := p.codeToUnit(position.Word, position.Code)
	for i := 0; i < position.Word; i++ {
		offset += p[i].UnitCount()
	}
	return offset
}

// SeekCells finds the word/codepoint position reached by moving offset
// display cells from whence.
func (p Phrase[S]) SeekCells(whence Position, offset int) (Position, int) {
	if offset == 0 || len(p) == 0 {
		return whence, offset
	}

	if offset < 0 {
		remaining := -offset + p.codeToCell(whence.Word, whence.Code)
		for i := whence.Word; i >= 0; i-- {
			wc := p[i].Cells
			if remaining <= wc {
				return Position{Word: i, Code: p.cellToCode(i, wc-remaining)}, 0
			}
			remaining -= wc
		}
		return Position{Word: 0, Code: 0}, -remaining
	}

	remaining := offset + p.codeToCell(whence.Word, whence.Code)
	for i := whence.Word; i < len(p); i++ {
		wc := p[i].Cells
		if remaining <= wc {
			return Position{Word: i, Code: p.cellToCode(i, remaining)}, 0
		}
		remaining -= wc
	}
	last := len(p) - 1
	return Position{Word: last, Code: p[last].CodeCount()}, remaining
}

// TellCells returns the absolute cell offset of position.
func (p Phrase[S]) TellCells(position Position) int {
	if len(p) == 0 {
		return 0
	}
	offset := p.codeToCell(position.Word, position.Code)
	for i := 0; i < position.Word; i++ {
		offset += p[i].Cells
	}
	return offset
}

func (p Phrase[S]) codeToUnit(wi, code int) int {
	if wi < 0 || wi >= len(p) {
		return 0
	}
	u := p[wi].unit()
	if u == 0 {
		return 0
	}
	return code / u
}

func (p Phrase[S]) unitToCode(wi, unitOffset int) int {
	if wi < 0 || wi >= len(p) {
		return 0
	}
	return unitOffset * p[wi].unit()
}

func (p Phrase[S]) codeToCell(wi, code int) int {
	if wi < 0 || wi >= len(p) {
		return 0
	}
	return code * p[wi].CellRate()
}

func (p Phrase[S]) cellToCode(wi, cell int) int {
	if wi < 0 || wi >= len(p) {
		return 0
	}
	rate := p[wi].CellRate()
	if rate == 0 {
		return 0
	}
	return cell / rate
}
