package mode

import (
	"unicode"

	"github.com/keystorm/keystorm/internal/input/key"
)

// InsertMode interprets most keys as text to insert at the cursor,
// falling back to a handful of structural actions (newline, backspace,
// cursor motion) for keys that aren't plain characters.
type InsertMode struct{}

// NewInsertMode creates a new insert mode instance.
func NewInsertMode() *InsertMode {
	return &InsertMode{}
}

// Name returns the mode identifier.
func (m *InsertMode) Name() string {
	return ModeInsert
}

// DisplayName returns the human-readable mode name.
func (m *InsertMode) DisplayName() string {
	return "INSERT"
}

// CursorStyle returns the cursor style for insert mode.
func (m *InsertMode) CursorStyle() CursorStyle {
	return CursorBar
}

// Enter is a no-op; insert mode carries no state across invocations.
func (m *InsertMode) Enter(ctx *Context) error { return nil }

// Exit is a no-op; insert mode carries no state across invocations.
func (m *InsertMode) Exit(ctx *Context) error { return nil }

// HandleUnmapped handles key events that have no explicit binding.
func (m *InsertMode) HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult {
	// Escape, Ctrl+C and Ctrl+[ all return to normal mode.
	if event.Key == key.KeyEscape {
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "mode.normal"}}
	}
	if event.Key == key.KeyRune && event.Modifiers.HasCtrl() && (event.Rune == 'c' || event.Rune == '[') {
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "mode.normal"}}
	}

	if event.Key == key.KeyBackspace {
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "editor.backspace"}}
	}
	if event.Key == key.KeyDelete {
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "editor.delete_char"}}
	}
	if event.Key == key.KeyEnter {
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "editor.newline"}}
	}
	if event.Key == key.KeyTab {
		return &UnmappedResult{Consumed: true, InsertText: "\t"}
	}

	switch event.Key {
	case key.KeyLeft:
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.left", Args: map[string]any{"count": 1}}}
	case key.KeyRight:
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.right", Args: map[string]any{"count": 1}}}
	case key.KeyUp:
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.up", Args: map[string]any{"count": 1}}}
	case key.KeyDown:
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.down", Args: map[string]any{"count": 1}}}
	case key.KeyHome:
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.line_start"}}
	case key.KeyEnd:
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.line_end"}}
	}

	if event.Key == key.KeySpace && !event.IsModified() {
		return &UnmappedResult{Consumed: true, InsertText: " "}
	}

	if event.IsRune() && !event.IsModified() && unicode.IsPrint(event.Rune) {
		return &UnmappedResult{Consumed: true, InsertText: string(event.Rune)}
	}

	return &UnmappedResult{Consumed: false}
}
