package mode

import (
	"github.com/keystorm/keystorm/internal/input/key"
)

// NormalMode interprets keys as motions and editing commands rather
// than text input. It tracks a numeric count prefix (e.g. the 5 in
// "5j") and a single pending "d" operator for the "dd" delete-line
// command; it does not implement a general operator/motion grammar.
type NormalMode struct {
	pendingDelete bool
	count         int
}

// NewNormalMode creates a new normal mode instance.
func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

// Name returns the mode identifier.
func (m *NormalMode) Name() string {
	return ModeNormal
}

// DisplayName returns the human-readable mode name.
func (m *NormalMode) DisplayName() string {
	return "NORMAL"
}

// CursorStyle returns the cursor style for normal mode.
func (m *NormalMode) CursorStyle() CursorStyle {
	return CursorBlock
}

// Enter resets pending state.
func (m *NormalMode) Enter(ctx *Context) error {
	m.ResetState()
	return nil
}

// Exit resets pending state.
func (m *NormalMode) Exit(ctx *Context) error {
	m.ResetState()
	return nil
}

// HandleUnmapped handles key events that have no explicit binding.
func (m *NormalMode) HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult {
	if event.Key == key.KeyEscape {
		m.ResetState()
		return &UnmappedResult{Consumed: true}
	}
	if event.Key == key.KeyRune && event.Rune == 'c' && event.Modifiers.HasCtrl() {
		m.ResetState()
		return &UnmappedResult{Consumed: true}
	}

	if event.IsRune() && !event.IsModified() {
		if result := m.handleRune(event.Rune); result != nil {
			return result
		}
	}

	if result := m.handleArrow(event.Key); result != nil {
		return result
	}

	if event.Modifiers.HasCtrl() && event.IsRune() {
		if result := m.handleCtrlRune(event.Rune); result != nil {
			return result
		}
	}

	return &UnmappedResult{Consumed: false}
}

func (m *NormalMode) handleRune(r rune) *UnmappedResult {
	if r >= '1' && r <= '9' {
		m.count = m.count*10 + int(r-'0')
		return &UnmappedResult{Consumed: true}
	}
	if r == '0' && m.count > 0 {
		m.count = m.count * 10
		return &UnmappedResult{Consumed: true}
	}

	count := m.Count()

	switch r {
	case 'i':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "mode.insert"}}
	case 'I':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "mode.insert", Args: map[string]any{"position": "line_start"}}}
	case 'a':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "mode.insert", Args: map[string]any{"position": "after"}}}
	case 'A':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "mode.insert", Args: map[string]any{"position": "line_end"}}}
	case 'o':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "mode.insert", Args: map[string]any{"position": "new_line_below"}}}
	case 'O':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "mode.insert", Args: map[string]any{"position": "new_line_above"}}}
	case ':':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "prompt.focus"}}

	case 'h':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.left", Args: map[string]any{"count": count}}}
	case 'j':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.down", Args: map[string]any{"count": count}}}
	case 'k':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.up", Args: map[string]any{"count": count}}}
	case 'l':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.right", Args: map[string]any{"count": count}}}
	case '0':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.line_start"}}
	case '$':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.line_end"}}
	case 'G':
		m.ResetState()
		if count > 1 {
			return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.go_to_line", Args: map[string]any{"line": count}}}
		}
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.file_end"}}

	case 'x':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "editor.delete_char", Args: map[string]any{"count": count}}}
	case 'X':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "editor.delete_char_before", Args: map[string]any{"count": count}}}
	case 'u':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "editor.undo", Args: map[string]any{"count": count}}}

	case 'd':
		if m.pendingDelete {
			m.ResetState()
			return &UnmappedResult{Consumed: true, Action: &Action{Name: "editor.delete_line", Args: map[string]any{"count": count}}}
		}
		m.pendingDelete = true
		return &UnmappedResult{Consumed: true}
	}

	return nil
}

func (m *NormalMode) handleArrow(k key.Key) *UnmappedResult {
	switch k {
	case key.KeyLeft:
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.left", Args: map[string]any{"count": 1}}}
	case key.KeyRight:
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.right", Args: map[string]any{"count": 1}}}
	case key.KeyUp:
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.up", Args: map[string]any{"count": 1}}}
	case key.KeyDown:
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.down", Args: map[string]any{"count": 1}}}
	case key.KeyHome:
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.line_start"}}
	case key.KeyEnd:
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "cursor.line_end"}}
	case key.KeyPageUp:
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "view.page_up"}}
	case key.KeyPageDown:
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "view.page_down"}}
	}
	return nil
}

func (m *NormalMode) handleCtrlRune(r rune) *UnmappedResult {
	switch r {
	case 'r', 'R':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "editor.redo"}}
	case 'f', 'F':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "view.page_down"}}
	case 'b', 'B':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "view.page_up"}}
	case 'q', 'Q':
		m.ResetState()
		return &UnmappedResult{Consumed: true, Action: &Action{Name: "app.quit"}}
	}
	return nil
}

// PendingDelete reports whether a "d" operator is awaiting its second
// press.
func (m *NormalMode) PendingDelete() bool {
	return m.pendingDelete
}

// Count returns the current count prefix, defaulting to 1.
func (m *NormalMode) Count() int {
	if m.count == 0 {
		return 1
	}
	return m.count
}

// ClearCount clears the count prefix.
func (m *NormalMode) ClearCount() {
	m.count = 0
}

// ResetState clears all pending state (operator and count).
func (m *NormalMode) ResetState() {
	m.pendingDelete = false
	m.count = 0
}
