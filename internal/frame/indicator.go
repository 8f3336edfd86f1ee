package frame

// Side names which border of a division an indicator sits on.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// IndicatorKind distinguishes the three decorations spec §4.5 names.
type IndicatorKind uint8

const (
	IndicatorCursor IndicatorKind = iota
	IndicatorRangeStart
	IndicatorRangeStop
)

func (k IndicatorKind) Glyph() rune {
	switch k {
	case IndicatorCursor:
		return '►'
	case IndicatorRangeStart:
		return '▲'
	case IndicatorRangeStop:
		return '▼'
	default:
		return ' '
	}
}

// IPosition is the scaled form of a view-relative axis position: which
// border side it projects onto, the offset along that border, which
// indicator it is, and the position's offset relative to the content
// area's visible span (used to suppress indicators scrolled off-screen).
type IPosition struct {
	Side     Side
	Coffset  int
	Kind     IndicatorKind
	Relative int
}

// ViewStatus is the minimal cursor/range state a view reports to
// Indicate.
type ViewStatus struct {
	Line            int
	RangeStartLine  int
	RangeStopLine   int
	HasRange        bool
	VisibleTop      int
	VisibleLines    int
}

// ScaleIPositions converts a ViewStatus into border-relative indicator
// positions for a division whose content area spans [top, top+lines).
func ScaleIPositions(status ViewStatus) []IPosition {
	var out []IPosition

	rel := status.Line - status.VisibleTop
	if rel >= 0 && rel < status.VisibleLines {
		out = append(out, IPosition{Side: SideLeft, Coffset: rel, Kind: IndicatorCursor, Relative: rel})
	}

	if status.HasRange {
		if r := status.RangeStartLine - status.VisibleTop; r >= 0 && r < status.VisibleLines {
			out = append(out, IPosition{Side: SideLeft, Coffset: r, Kind: IndicatorRangeStart, Relative: r})
		}
		if r := status.RangeStopLine - status.VisibleTop; r >= 0 && r < status.VisibleLines {
			out = append(out, IPosition{Side: SideLeft, Coffset: r, Kind: IndicatorRangeStop, Relative: r})
		}
	}
	return out
}

// Indicate produces the decorative border cells marking cursor and
// range positions for the division at (vertical, division), combining
// the scaled positions with the cached intersection glyphs so corners
// and T-junctions are preserved where no indicator overrides them.
func (f *Frame) Indicate(vertical, division int, status ViewStatus) []BorderCell {
	div, ok := f.Pane(vertical, division)
	if !ok {
		return nil
	}
	return rIndicators(div, ScaleIPositions(status), f.intersections)
}

func rIndicators(div Division, positions []IPosition, intersections map[Point]BorderKind) []BorderCell {
	cells := make([]BorderCell, 0, len(positions))
	for _, p := range positions {
		var pt Point
		switch p.Side {
		case SideLeft:
			pt = Point{div.Content.LeftOffset - 1, div.Content.TopOffset + p.Coffset}
		case SideRight:
			pt = Point{div.Content.LeftOffset + div.Content.Span, div.Content.TopOffset + p.Coffset}
		case SideTop:
			pt = Point{div.Content.LeftOffset + p.Coffset, div.Content.TopOffset - 1}
		case SideBottom:
			pt = Point{div.Content.LeftOffset + p.Coffset, div.Content.TopOffset + div.Content.Lines}
		}

		if _, isJunction := intersections[pt]; isJunction {
			continue
		}
		cells = append(cells, BorderCell{Point: pt, Kind: indicatorBorderKind(p.Kind)})
	}
	return cells
}

func indicatorBorderKind(k IndicatorKind) BorderKind {
	// Indicators reuse BorderKind purely as a carrier; Glyph on the
	// indicator kind itself is what callers render. BorderNone here
	// signals "not a structural border cell" to distinguish it from
	// the intersection cache's entries when both are drained together.
	_ = k
	return BorderNone
}
