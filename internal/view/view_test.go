package view

import (
	"testing"

	"github.com/keystorm/keystorm/internal/alignment"
	"github.com/keystorm/keystorm/internal/element"
	"github.com/keystorm/keystorm/internal/reform"
)

func newResourceWithLines(t *testing.T, n int) *element.Resource {
	t.Helper()
	r := element.NewResource("test", element.DefaultReformulations())
	lines := make([]element.Line, n)
	for i := range lines {
		lines[i] = element.Line{Content: "line"}
	}
	if err := r.InsertLines(0, lines); err != nil {
		t.Fatalf("InsertLines: %v", err)
	}
	return r
}

func newTestView(t *testing.T, n, rows int) *Refraction {
	t.Helper()
	r := newResourceWithLines(t, n)
	area := alignment.Area{Lines: rows, Span: 40}
	v := New(r, reform.Default(), area)
	v.Drain()
	return v
}

func TestRefreshFillsWindow(t *testing.T) {
	v := newTestView(t, 5, 3)
	if v.Image.Len() != 3 {
		t.Fatalf("Image.Len() = %d, want 3", v.Image.Len())
	}
}

func TestRecursorScrollsForwardWhenCursorBelowMargin(t *testing.T) {
	v := newTestView(t, 20, 5)
	v.VerticalMargin = 1
	v.LinePos = 4

	v.Recursor()

	if v.LineOffset <= 0 {
		t.Fatalf("LineOffset = %d, want > 0 after scrolling forward", v.LineOffset)
	}
}

func TestRecursorJumpScrollsWhenCursorFarAhead(t *testing.T) {
	v := newTestView(t, 100, 5)
	v.LinePos = 50

	v.Recursor()

	want := 50 - 5/2
	if v.LineOffset != want {
		t.Fatalf("LineOffset = %d, want %d", v.LineOffset, want)
	}
}

func TestRecursorNoopWhenCursorWithinMargins(t *testing.T) {
	v := newTestView(t, 20, 5)
	v.LinePos = 2

	v.Recursor()

	if v.LineOffset != 0 {
		t.Fatalf("LineOffset = %d, want 0", v.LineOffset)
	}
}

func TestCodepointDeltaRedrawsRowInWindow(t *testing.T) {
	v := newTestView(t, 5, 3)

	if err := v.Source.InsertCodepoints(1, 0, "X"); err != nil {
		t.Fatalf("InsertCodepoints: %v", err)
	}

	instrs := v.Drain()
	if len(instrs) != 1 || instrs[0].Kind != InstrRedraw || instrs[0].Row != 1 {
		t.Fatalf("instructions = %+v, want single redraw of row 1", instrs)
	}
	if v.Image.Phrases[1].Text() != "Xline" {
		t.Fatalf("Image row 1 text = %q, want Xline", v.Image.Phrases[1].Text())
	}
}

func TestCodepointDeltaIgnoredOutsideWindow(t *testing.T) {
	v := newTestView(t, 20, 3)

	if err := v.Source.InsertCodepoints(10, 0, "X"); err != nil {
		t.Fatalf("InsertCodepoints: %v", err)
	}

	if instrs := v.Drain(); len(instrs) != 0 {
		t.Fatalf("instructions = %+v, want none", instrs)
	}
}

func TestLineDeltaInsertionWithinWindowPushesRows(t *testing.T) {
	v := newTestView(t, 5, 3)

	if err := v.Source.InsertLines(1, []element.Line{{Content: "new"}}); err != nil {
		t.Fatalf("InsertLines: %v", err)
	}

	if v.Image.Len() != 3 {
		t.Fatalf("Image.Len() = %d, want 3", v.Image.Len())
	}
	if v.Image.Phrases[1].Text() != "new" {
		t.Fatalf("Image row 1 = %q, want new", v.Image.Phrases[1].Text())
	}
	instrs := v.Drain()
	if len(instrs) == 0 {
		t.Fatal("expected at least one instruction")
	}
}

func TestLineDeltaDeletionWithinWindowPullsRows(t *testing.T) {
	v := newTestView(t, 5, 3)

	if err := v.Source.DeleteLines(0, 1); err != nil {
		t.Fatalf("DeleteLines: %v", err)
	}

	if v.Image.Len() != 3 {
		t.Fatalf("Image.Len() = %d, want 3", v.Image.Len())
	}
	instrs := v.Drain()
	if len(instrs) == 0 {
		t.Fatal("expected at least one instruction")
	}
}

func TestLineDeltaBeforeWindowAdjustsOffsetOnly(t *testing.T) {
	v := newTestView(t, 20, 3)
	v.LineOffset = 10
	v.Refresh()
	v.Drain()

	if err := v.Source.InsertLines(0, []element.Line{{Content: "new"}}); err != nil {
		t.Fatalf("InsertLines: %v", err)
	}

	if v.LineOffset != 11 {
		t.Fatalf("LineOffset = %d, want 11", v.LineOffset)
	}
}

func TestLastPageDeletionShrinksOffsetTowardZero(t *testing.T) {
	v := newTestView(t, 5, 3)
	v.LineOffset = 2
	v.Refresh()
	v.Drain()

	if err := v.Source.DeleteLines(3, 2); err != nil {
		t.Fatalf("DeleteLines: %v", err)
	}

	if v.LineOffset < 0 {
		t.Fatalf("LineOffset = %d, want >= 0", v.LineOffset)
	}
	if v.Image.Len() != 3 {
		t.Fatalf("Image.Len() = %d, want 3", v.Image.Len())
	}
}
