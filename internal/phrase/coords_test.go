package phrase

import "testing"

func TestCoordinateIsomorphismAcrossModes(t *testing.T) {
	p := FromText("ab\tcdef", 1, 4, "x")

	for offset := 0; offset <= p.CodeCount(); offset++ {
		pos, remainder := p.Seek(Position{}, offset)
		if remainder != 0 {
			continue
		}
		if got := p.Tell(pos); got != offset {
			t.Fatalf("codepoint mode: Tell(Seek(0,%d)) = %d", offset, got)
		}
	}

	for offset := 0; offset <= p.UnitCount(); offset++ {
		pos, remainder := p.SeekUnits(Position{}, offset)
		if remainder != 0 {
			continue
		}
		if got := p.TellUnits(pos); got != offset {
			t.Fatalf("unit mode: TellUnits(SeekUnits(0,%d)) = %d", offset, got)
		}
	}

	for offset := 0; offset <= p.CellCount(); offset++ {
		pos, remainder := p.SeekCells(Position{}, offset)
		if remainder != 0 {
			continue
		}
		if got := p.TellCells(pos); got != offset {
			t.Fatalf("cell mode: TellCells(SeekCells(0,%d)) = %d", offset, got)
		}
	}
}
