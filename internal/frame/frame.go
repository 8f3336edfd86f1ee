// Package frame implements spec §4.5's grid layout model: a Frame
// partitions a screen Area into vertical stripes, each stripe further
// split into divisions, each division carrying three sub-Areas
// (location header, content, prompt footer). Border glyphs are a pure
// function of the model, cached as an intersection map keyed by
// screen position so corners and T-junctions survive partial
// re-renders.
//
// Grounded on original_source/elements/frame.py's configure/remodel
// pair and the border generators r_enclose/r_divide/r_patch_footer;
// the Go struct shape follows internal/renderer/layout's Pane/Grid
// convention from the teacher repo.
package frame

import "github.com/keystorm/keystorm/internal/alignment"

// LayoutEntry describes one vertical stripe's requested shape:
// Divisions rows within it, and Allocation screen columns wide. An
// Allocation of 0 means the stripe absorbs whatever width remains
// after every other stripe's explicit allocation.
type LayoutEntry struct {
	Divisions  int
	Allocation int
}

// Division is one pane within a vertical stripe: a location header
// line, a content area, and a prompt footer line, each its own Area.
type Division struct {
	Header  alignment.Area
	Content alignment.Area
	Footer  alignment.Area
}

// Vertical is one stripe of the frame: its full Area (including the
// separator column to its left, if any) and the Divisions stacked
// within it.
type Vertical struct {
	Area      alignment.Area
	Divisions []Division
}

// Point addresses a single screen cell for the intersection cache.
type Point struct{ X, Y int }

// BorderKind names a border glyph's junction shape.
type BorderKind uint8

const (
	BorderNone BorderKind = iota
	BorderHorizontal
	BorderVertical
	BorderCross
	BorderTeeUp
	BorderTeeDown
	BorderTeeLeft
	BorderTeeRight
	BorderCornerTL
	BorderCornerTR
	BorderCornerBL
	BorderCornerBR
)

// Glyph returns the box-drawing rune for k.
func (k BorderKind) Glyph() rune {
	switch k {
	case BorderHorizontal:
		return '─'
	case BorderVertical:
		return '│'
	case BorderCross:
		return '┼'
	case BorderTeeUp:
		return '┴'
	case BorderTeeDown:
		return '┬'
	case BorderTeeLeft:
		return '┤'
	case BorderTeeRight:
		return '├'
	case BorderCornerTL:
		return '┌'
	case BorderCornerTR:
		return '┐'
	case BorderCornerBL:
		return '└'
	case BorderCornerBR:
		return '┘'
	default:
		return ' '
	}
}

// BorderCell is one border glyph positioned on the screen.
type BorderCell struct {
	Point Point
	Kind  BorderKind
}

// Frame is the grid layout model of spec §4.5.
type Frame struct {
	Area          alignment.Area
	Layout        []LayoutEntry
	Verticals     []Vertical
	intersections map[Point]BorderKind
}

// New creates an unconfigured Frame; call Configure before use.
func New() *Frame {
	return &Frame{intersections: make(map[Point]BorderKind)}
}

// Configure lays out area according to layout, then remodels the
// derived verticals, divisions, and border intersection cache.
func (f *Frame) Configure(area alignment.Area, layout []LayoutEntry) {
	f.Area = area
	f.Layout = layout
	f.remodel()
}

// remodel rebuilds verticals, divisions, areas, and the intersection
// cache from Area and Layout in O(V·D).
func (f *Frame) remodel() {
	f.Verticals = distributeVerticals(f.Area, f.Layout)
	f.intersections = make(map[Point]BorderKind)
	f.cacheIntersections()
}

func distributeVerticals(area alignment.Area, layout []LayoutEntry) []Vertical {
	n := len(layout)
	if n == 0 {
		return nil
	}

	borders := n - 1
	explicit := 0
	zeroCount := 0
	for _, l := range layout {
		if l.Allocation > 0 {
			explicit += l.Allocation
		} else {
			zeroCount++
		}
	}
	available := area.Span - borders - explicit
	if available < 0 {
		available = 0
	}

	var per, rem int
	if zeroCount > 0 {
		per = available / zeroCount
		rem = available % zeroCount
	}

	verticals := make([]Vertical, n)
	left := area.LeftOffset
	zeroIdx := 0
	for i, l := range layout {
		if i > 0 {
			left++ // separator column
		}
		width := l.Allocation
		if l.Allocation <= 0 {
			width = per
			if zeroIdx < rem {
				width++
			}
			zeroIdx++
		}
		stripeArea := alignment.Area{TopOffset: area.TopOffset, LeftOffset: left, Lines: area.Lines, Span: width}
		verticals[i] = Vertical{Area: stripeArea, Divisions: distributeDivisions(stripeArea, l.Divisions)}
		left += width
	}
	return verticals
}

func distributeDivisions(area alignment.Area, count int) []Division {
	if count <= 0 {
		count = 1
	}
	base := area.Lines / count
	rem := area.Lines % count

	divisions := make([]Division, count)
	top := area.TopOffset
	for i := 0; i < count; i++ {
		h := base
		if i < rem {
			h++
		}
		if i > 0 {
			top++ // horizontal separator row
			h--
		}
		if h < 0 {
			h = 0
		}

		header, content, footer := 0, h, 0
		if h >= 1 {
			header = 1
			content--
		}
		if h-header >= 1 {
			footer = 1
			content--
		}
		if content < 0 {
			content = 0
		}

		divisions[i] = Division{
			Header:  alignment.Area{TopOffset: top, LeftOffset: area.LeftOffset, Lines: header, Span: area.Span},
			Content: alignment.Area{TopOffset: top + header, LeftOffset: area.LeftOffset, Lines: content, Span: area.Span},
			Footer:  alignment.Area{TopOffset: top + header + content, LeftOffset: area.LeftOffset, Lines: footer, Span: area.Span},
		}
		top += h
	}
	return divisions
}

func (f *Frame) cacheIntersections() {
	for vi, v := range f.Verticals {
		sepX := v.Area.LeftOffset - 1
		if vi > 0 && sepX >= f.Area.LeftOffset {
			for y := f.Area.TopOffset; y < f.Area.TopOffset+f.Area.Lines; y++ {
				f.intersections[Point{sepX, y}] = BorderVertical
			}
			if f.Area.Lines > 0 {
				f.intersections[Point{sepX, f.Area.TopOffset}] = BorderTeeDown
				f.intersections[Point{sepX, f.Area.TopOffset + f.Area.Lines - 1}] = BorderTeeUp
			}
		}
		for di := 1; di < len(v.Divisions); di++ {
			sepY := v.Divisions[di].Header.TopOffset - 1
			for x := v.Area.LeftOffset; x < v.Area.LeftOffset+v.Area.Span; x++ {
				p := Point{x, sepY}
				if _, ok := f.intersections[p]; ok {
					f.intersections[p] = BorderCross
				} else {
					f.intersections[p] = BorderHorizontal
				}
			}
		}
	}
}

// Pane returns the division at (vertical, division), or false if out
// of range.
func (f *Frame) Pane(vertical, division int) (Division, bool) {
	if vertical < 0 || vertical >= len(f.Verticals) {
		return Division{}, false
	}
	v := f.Verticals[vertical]
	if division < 0 || division >= len(v.Divisions) {
		return Division{}, false
	}
	return v.Divisions[division], true
}

// Enclose emits the outer border of the frame.
func (f *Frame) Enclose() []BorderCell {
	return rEnclose(f.Area)
}

func rEnclose(area alignment.Area) []BorderCell {
	if area.Lines <= 0 || area.Span <= 0 {
		return nil
	}
	top, left := area.TopOffset, area.LeftOffset
	bottom, right := top+area.Lines-1, left+area.Span-1

	var cells []BorderCell
	for x := left; x <= right; x++ {
		cells = append(cells, BorderCell{Point{x, top}, BorderHorizontal}, BorderCell{Point{x, bottom}, BorderHorizontal})
	}
	for y := top; y <= bottom; y++ {
		cells = append(cells, BorderCell{Point{left, y}, BorderVertical}, BorderCell{Point{right, y}, BorderVertical})
	}
	cells = append(cells,
		BorderCell{Point{left, top}, BorderCornerTL},
		BorderCell{Point{right, top}, BorderCornerTR},
		BorderCell{Point{left, bottom}, BorderCornerBL},
		BorderCell{Point{right, bottom}, BorderCornerBR},
	)
	return cells
}

// Divide emits the separator columns and rows between panes, using
// the cached intersection glyphs so corners/T-junctions are correct.
func (f *Frame) Divide() []BorderCell {
	cells := make([]BorderCell, 0, len(f.intersections))
	for p, k := range f.intersections {
		cells = append(cells, BorderCell{p, k})
	}
	return cells
}

// PatchFooter emits the separator row directly above a division's
// footer, for the common case of redrawing just one pane's footer
// border after a resize.
func (f *Frame) PatchFooter(vertical, division int) []BorderCell {
	div, ok := f.Pane(vertical, division)
	if !ok || div.Footer.Lines == 0 {
		return nil
	}
	return rPatchFooter(div.Footer)
}

func rPatchFooter(footer alignment.Area) []BorderCell {
	y := footer.TopOffset - 1
	cells := make([]BorderCell, 0, footer.Span)
	for x := footer.LeftOffset; x < footer.LeftOffset+footer.Span; x++ {
		cells = append(cells, BorderCell{Point{x, y}, BorderHorizontal})
	}
	return cells
}
