// Package view implements the Refraction of spec §4.4: a view bound to
// a Resource, holding cursor and window state, an Image of rendered
// Phrases, and the margin-scroll (recursor) and incremental delta
// (v_update) algorithms that keep the Image in sync with a Resource's
// edits while emitting minimal screen update instructions.
//
// Grounded on original_source/elements/view.py's Refraction class
// (recursor, v_update, and the Fields image cache) and on
// internal/alignment's port of original_source/syntax/alignment.py for
// the scroll and screen-copy arithmetic; the struct shape follows
// internal/renderer/viewport's ContentArea/ScrollState convention from
// the teacher repo.
package view

import (
	"github.com/keystorm/keystorm/internal/alignment"
	"github.com/keystorm/keystorm/internal/device/core"
	"github.com/keystorm/keystorm/internal/element"
	"github.com/keystorm/keystorm/internal/phrase"
	"github.com/keystorm/keystorm/internal/reform"
)

// InstrKind distinguishes the two kinds of screen update instruction a
// Refraction emits.
type InstrKind uint8

const (
	// InstrRedraw means the single row Row must be fully repainted from
	// the Image (an in-place content change, no line count change).
	InstrRedraw InstrKind = iota
	// InstrCopy means the screen region described by Copy must be
	// scrolled (Src copied onto Dst, Vacant repainted from the Image
	// at the rows the caller re-renders).
	InstrCopy
	// InstrRefresh means the whole view must be repainted; the Image
	// already holds the correct content.
	InstrRefresh
)

// Instruction is one minimal screen update a Refraction has computed.
// A caller (session/frame) is responsible for performing the actual
// cell copy or redraw against a device.
type Instruction struct {
	Kind InstrKind
	Row  int
	Copy alignment.CopyPlan
}

// Refraction is a view onto a Resource: an Area of the screen, a
// cursor (LinePos, ColPos), a scroll margin, and an Image cache of
// Phrases for the rows currently visible.
type Refraction struct {
	Area   alignment.Area
	Source *element.Resource
	Reform reform.Reformulations
	Image  *phrase.Image[core.Style]

	// LineOffset is the index into Source of the first row the Image
	// currently holds.
	LineOffset int

	LinePos int
	ColPos  int

	VerticalMargin   int
	HorizontalMargin int

	obsID   int
	pending []Instruction
}

// New creates a Refraction over source, attaching it as an observer so
// its Image tracks every subsequent edit.
func New(source *element.Resource, rf reform.Reformulations, area alignment.Area) *Refraction {
	v := &Refraction{
		Area:   area,
		Source: source,
		Reform: rf,
		Image:  phrase.NewImage[core.Style](rf.CtlSize, rf.TabSize),
	}
	v.obsID = source.Attach(v)
	v.Refresh()
	return v
}

// Close detaches the Refraction from its Source.
func (v *Refraction) Close() {
	v.Source.Detach(v.obsID)
}

// Drain returns and clears the instructions accumulated since the last
// Drain call.
func (v *Refraction) Drain() []Instruction {
	out := v.pending
	v.pending = nil
	return out
}

func (v *Refraction) viewEnd() int {
	return v.LineOffset + v.Area.Lines
}

func (v *Refraction) renderRow(row int) {
	element := v.LineOffset + row
	if element < 0 || element >= v.Source.LnCount() {
		v.Image.Update(row, phrase.Phrase[core.Style]{})
		return
	}
	line, err := v.Source.Sole(element)
	if err != nil {
		v.Image.Update(row, phrase.Phrase[core.Style]{})
		return
	}
	v.Image.Update(row, v.Reform.Compose(line))
}

func (v *Refraction) renderRows(start, stop int) {
	for row := start; row < stop; row++ {
		if row < 0 || row >= v.Image.Len() {
			continue
		}
		v.renderRow(row)
	}
}

// Refresh reloads the Image in full from Source starting at
// LineOffset, for exactly Area.Lines rows (padding with empty rows
// past end of document).
func (v *Refraction) Refresh() {
	total := v.Source.LnCount()
	rows := v.Area.Lines
	if v.LineOffset < 0 {
		v.LineOffset = 0
	}
	maxOffset := total - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.LineOffset > maxOffset {
		v.LineOffset = maxOffset
	}

	phrases := make([]phrase.Phrase[core.Style], 0, rows)
	for i := 0; i < rows; i++ {
		element := v.LineOffset + i
		if element >= total {
			phrases = append(phrases, phrase.Phrase[core.Style]{})
			continue
		}
		line, err := v.Source.Sole(element)
		if err != nil {
			phrases = append(phrases, phrase.Phrase[core.Style]{})
			continue
		}
		phrases = append(phrases, v.Reform.Compose(line))
	}
	v.Image.Phrases = phrases
	v.Image.Whence = make([]phrase.Whence[core.Style], len(phrases))
	v.Image.PanAbsolute(v.Image.Pan)
	v.pending = append(v.pending, Instruction{Kind: InstrRefresh})
}

// Recursor recomputes the scroll position required to keep LinePos
// within the configured vertical margin, jump-scrolling to center the
// cursor when it has moved far outside the visible window and
// otherwise scrolling by twice the margin, per spec §4.4.
func (v *Refraction) Recursor() {
	climit := v.VerticalMargin
	if climit < 0 {
		climit = 0
	}
	sunit := climit * 2
	if sunit < 1 {
		sunit = 1
	}
	edge := v.Area.Lines

	rln := v.LinePos - v.LineOffset
	switch {
	case rln <= climit && rln < 0:
		v.jumpScrollCenter()
	case rln <= climit:
		v.scroll(-sunit)
	}

	rln = v.LinePos - v.LineOffset
	switch {
	case rln > edge:
		v.jumpScrollCenter()
	case rln >= edge-climit:
		v.scroll(sunit)
	}
}

func (v *Refraction) jumpScrollCenter() {
	total := v.Source.LnCount()
	target := v.LinePos - v.Area.Lines/2
	maxOffset := total - v.Area.Lines
	if maxOffset < 0 {
		maxOffset = 0
	}
	if target < 0 {
		target = 0
	}
	if target > maxOffset {
		target = maxOffset
	}
	if target == v.LineOffset {
		return
	}
	v.LineOffset = target
	v.Refresh()
}

func (v *Refraction) scroll(quantity int) {
	total := v.Source.LnCount()
	res := alignment.Scroll(total, v.Area.Lines, v.LineOffset, quantity)
	if res.Position == v.LineOffset {
		return
	}
	v.LineOffset = res.Position
	v.Refresh()
}

// LineDelta implements delta.Observer, compiling a whole-line edit
// report into Image mutations and screen copy instructions.
func (v *Refraction) LineDelta(lnOffset, deleted, inserted int) {
	if deleted == 0 && inserted == 0 {
		return
	}

	dt := inserted - deleted
	total := v.Source.LnCount()
	preTotal := total - dt
	end := v.viewEnd()
	lastPage := end >= preTotal && v.LineOffset > 0

	if deleted > 0 {
		v.applyDeletion(lnOffset, deleted, lastPage)
	}
	if inserted > 0 {
		v.applyInsertion(lnOffset, inserted, lastPage)
	}

	v.Image.Truncate(v.Area.Lines)
}

// CodepointDelta implements delta.Observer, redrawing the single row
// affected by an intra-line edit when it falls within the window.
func (v *Refraction) CodepointDelta(lnOffset, cpOffset, deleted, inserted int) {
	if deleted == 0 && inserted == 0 {
		return
	}
	if lnOffset < v.LineOffset || lnOffset >= v.viewEnd() {
		return
	}
	row := lnOffset - v.LineOffset
	v.renderRow(row)
	v.pending = append(v.pending, Instruction{Kind: InstrRedraw, Row: row})
}

func (v *Refraction) applyDeletion(start, count int, lastPage bool) {
	if start < v.LineOffset {
		before := v.LineOffset - start
		if before > count {
			before = count
		}
		v.LineOffset -= before
		remaining := count - before
		if remaining <= 0 {
			return
		}
		v.deleteFromImage(0, remaining, lastPage)
		return
	}

	if start >= v.viewEnd() {
		return
	}

	rowStart := start - v.LineOffset
	rowStop := rowStart + count
	if rowStop > v.Area.Lines {
		rowStop = v.Area.Lines
	}
	v.deleteFromImage(rowStart, rowStop, lastPage)
}

func (v *Refraction) deleteFromImage(rowStart, rowStop int, lastPage bool) {
	if rowStart >= rowStop {
		return
	}
	area := v.Area
	var plan alignment.CopyPlan
	if lastPage {
		plan = alignment.StopRelativeDelete(area, rowStart, rowStop)
	} else {
		plan = alignment.StartRelativeDelete(area, rowStart, rowStop)
	}
	v.Image.Delete(rowStart, rowStop)

	if lastPage {
		v.LineOffset -= rowStop - rowStart
		if v.LineOffset < 0 {
			v.LineOffset = 0
			v.Refresh()
			return
		}
		v.Image.Prefix(make([]phrase.Phrase[core.Style], rowStop-rowStart))
		v.renderRows(0, rowStop-rowStart)
	} else {
		v.Image.Suffix(make([]phrase.Phrase[core.Style], rowStop-rowStart))
		tailStart := v.Image.Len() - (rowStop - rowStart)
		v.renderRows(tailStart, v.Image.Len())
	}
	v.pending = append(v.pending, Instruction{Kind: InstrCopy, Copy: plan})
}

func (v *Refraction) applyInsertion(start, count int, lastPage bool) {
	if start < v.LineOffset {
		v.LineOffset += count
		return
	}
	if start > v.viewEnd() {
		if lastPage {
			v.LineOffset += count
		}
		return
	}

	rowStart := start - v.LineOffset
	rowStop := rowStart + count
	area := v.Area
	var plan alignment.CopyPlan
	if lastPage {
		plan = alignment.StopRelativeInsert(area, rowStart, rowStop)
	} else {
		plan = alignment.StartRelativeInsert(area, rowStart, rowStop)
	}

	v.Image.Insert(rowStart, make([]phrase.Phrase[core.Style], count))
	v.renderRows(rowStart, rowStop)
	v.pending = append(v.pending, Instruction{Kind: InstrCopy, Copy: plan})
}
