// Package device implements spec §6's Device contract: the boundary
// between the core and a concrete terminal, consumed by
// internal/session and internal/view but not specified beyond its
// operation set. Adapter is a minimal, illustrative binding of that
// contract onto internal/device/backend's Backend interface (itself a
// thin wrapper over github.com/gdamore/tcell/v2); it is not a terminal
// driver reimplementation, per spec §1's Non-goals.
//
// Grounded on internal/renderer/backend.Backend (the teacher's
// screen/event abstraction, moved here in trimmed form as
// internal/device/backend) and original_source/kernel's transfer_event()/key()/
// screen.rewrite() naming for the contract shape.
package device

import (
	"github.com/keystorm/keystorm/internal/alignment"
	"github.com/keystorm/keystorm/internal/device/backend"
	"github.com/keystorm/keystorm/internal/device/core"
	"github.com/keystorm/keystorm/internal/input/key"
)

// Device is the contract spec §6 names: blocking event transfer, key
// tokenization, screen-region writes/copies/invalidation, and the
// three frame-commit hooks (render, dispatch, synchronize).
type Device interface {
	// TransferEvent blocks until input arrives and returns it as a key
	// event. Adapter always returns a nil error: a non-key backend
	// event, including the one a closed screen yields, comes back as a
	// KeyNone event.
	TransferEvent() (key.Event, error)

	// Key returns the most recently transferred key as a token like
	// "[A][⇧⌃]", with modifiers overridden by the given mask.
	Key(modifiers key.Modifier) string

	// ScreenRewrite writes cells into area, row-major.
	ScreenRewrite(area alignment.Area, cells []core.Cell)

	// ReplicateCells copies the cell content of src onto dst; the two
	// areas must have equal Lines and Span.
	ReplicateCells(src, dst alignment.Area)

	// InvalidateCells marks area as needing a full redraw by clearing
	// it to the empty cell.
	InvalidateCells(area alignment.Area)

	// RenderImage flushes buffered cell writes toward the display.
	RenderImage() error

	// DispatchImage commits the rendered image, including cursor
	// position and style.
	DispatchImage() error

	// Synchronize forces a full resync between the internal buffer and
	// the physical display, discarding any assumption of prior state.
	Synchronize() error
}

// Adapter binds a backend.Backend to the Device contract.
type Adapter struct {
	backend backend.Backend
	last    key.Event

	cursorX, cursorY int
	cursorVisible    bool
	cursorStyle      backend.CursorStyle
}

// NewAdapter wraps b as a Device.
func NewAdapter(b backend.Backend) *Adapter {
	return &Adapter{backend: b}
}

// Backend returns the wrapped backend, for callers that need direct
// access (Init, Shutdown, size queries) beyond the Device
// contract.
func (a *Adapter) Backend() backend.Backend { return a.backend }

func (a *Adapter) TransferEvent() (key.Event, error) {
	ev := a.backend.PollEvent()
	a.last = convertEvent(ev)
	return a.last, nil
}

func (a *Adapter) Key(modifiers key.Modifier) string {
	ev := a.last
	ev.Modifiers = modifiers
	return ev.Token()
}

func (a *Adapter) ScreenRewrite(area alignment.Area, cells []core.Cell) {
	for row := 0; row < area.Lines; row++ {
		for col := 0; col < area.Span; col++ {
			idx := row*area.Span + col
			if idx >= len(cells) {
				return
			}
			a.backend.SetCell(area.LeftOffset+col, area.TopOffset+row, cells[idx])
		}
	}
}

func (a *Adapter) ReplicateCells(src, dst alignment.Area) {
	lines, span := src.Lines, src.Span
	if dst.Lines < lines {
		lines = dst.Lines
	}
	if dst.Span < span {
		span = dst.Span
	}

	rowOrder := func(yield func(row int)) {
		if dst.TopOffset <= src.TopOffset {
			for row := 0; row < lines; row++ {
				yield(row)
			}
			return
		}
		for row := lines - 1; row >= 0; row-- {
			yield(row)
		}
	}

	rowOrder(func(row int) {
		for col := 0; col < span; col++ {
			cell := a.backend.GetCell(src.LeftOffset+col, src.TopOffset+row)
			a.backend.SetCell(dst.LeftOffset+col, dst.TopOffset+row, cell)
		}
	})
}

func (a *Adapter) InvalidateCells(area alignment.Area) {
	rect := core.RectFromSize(area.TopOffset, area.LeftOffset, area.Lines, area.Span)
	a.backend.Fill(rect, core.EmptyCell())
}

func (a *Adapter) RenderImage() error {
	a.backend.Show()
	return nil
}

func (a *Adapter) DispatchImage() error {
	if a.cursorVisible {
		a.backend.ShowCursor(a.cursorX, a.cursorY)
	} else {
		a.backend.HideCursor()
	}
	a.backend.SetCursorStyle(a.cursorStyle)
	a.backend.Show()
	return nil
}

func (a *Adapter) Synchronize() error {
	a.backend.Clear()
	return nil
}

// SetCursor records the cursor position and visibility DispatchImage
// applies on its next call.
func (a *Adapter) SetCursor(x, y int, visible bool, style backend.CursorStyle) {
	a.cursorX, a.cursorY, a.cursorVisible, a.cursorStyle = x, y, visible, style
}
