package mode

import (
	"testing"

	"github.com/keystorm/keystorm/internal/input/key"
)

func TestCursorStyleString(t *testing.T) {
	tests := []struct {
		style CursorStyle
		want  string
	}{
		{CursorBlock, "block"},
		{CursorBar, "bar"},
		{CursorUnderline, "underline"},
		{CursorHidden, "hidden"},
		{CursorStyle(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.style.String(); got != tt.want {
			t.Errorf("CursorStyle(%d).String() = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestContextWithCount(t *testing.T) {
	ctx := NewContext()
	ctx2 := ctx.WithCount(5)

	if ctx2.Count != 5 {
		t.Errorf("WithCount(5) = %d, want 5", ctx2.Count)
	}
	if ctx.Count != 0 {
		t.Error("WithCount should not modify original")
	}
}

func TestNormalMode(t *testing.T) {
	m := NewNormalMode()

	if m.Name() != ModeNormal {
		t.Errorf("Name() = %q, want %q", m.Name(), ModeNormal)
	}
	if m.DisplayName() != "NORMAL" {
		t.Errorf("DisplayName() = %q, want %q", m.DisplayName(), "NORMAL")
	}
	if m.CursorStyle() != CursorBlock {
		t.Errorf("CursorStyle() = %v, want CursorBlock", m.CursorStyle())
	}

	ctx := NewContext()
	if err := m.Enter(ctx); err != nil {
		t.Errorf("Enter() error = %v", err)
	}
	if err := m.Exit(ctx); err != nil {
		t.Errorf("Exit() error = %v", err)
	}
}

func TestNormalModeCount(t *testing.T) {
	m := NewNormalMode()
	ctx := NewContext()
	_ = m.Enter(ctx)

	if m.Count() != 1 {
		t.Errorf("initial Count() = %d, want 1", m.Count())
	}

	result := m.HandleUnmapped(key.NewRuneEvent('5', key.ModNone), ctx)
	if !result.Consumed {
		t.Error("digit '5' should be consumed")
	}
	_ = m.HandleUnmapped(key.NewRuneEvent('3', key.ModNone), ctx)
	if m.Count() != 53 {
		t.Errorf("Count() after '53' = %d, want 53", m.Count())
	}

	_ = m.HandleUnmapped(key.NewRuneEvent('0', key.ModNone), ctx)
	if m.Count() != 530 {
		t.Errorf("Count() after '530' = %d, want 530", m.Count())
	}

	m.ClearCount()
	if m.Count() != 1 {
		t.Errorf("Count() after clear = %d, want 1", m.Count())
	}
}

func TestNormalModeMotionConsumesCountAndEmitsAction(t *testing.T) {
	m := NewNormalMode()
	ctx := NewContext()

	_ = m.HandleUnmapped(key.NewRuneEvent('3', key.ModNone), ctx)
	result := m.HandleUnmapped(key.NewRuneEvent('j', key.ModNone), ctx)

	if result.Action == nil || result.Action.Name != "cursor.down" {
		t.Fatalf("Action = %+v, want cursor.down", result.Action)
	}
	if got := result.Action.Args["count"]; got != 3 {
		t.Errorf("count arg = %v, want 3", got)
	}
	if m.Count() != 1 {
		t.Error("count should reset after the motion consumes it")
	}
}

func TestNormalModeDoubleDeleteEmitsDeleteLine(t *testing.T) {
	m := NewNormalMode()
	ctx := NewContext()

	first := m.HandleUnmapped(key.NewRuneEvent('d', key.ModNone), ctx)
	if first.Action != nil {
		t.Fatalf("first 'd' should not emit an action yet, got %+v", first.Action)
	}
	if !m.PendingDelete() {
		t.Error("first 'd' should set PendingDelete")
	}

	second := m.HandleUnmapped(key.NewRuneEvent('d', key.ModNone), ctx)
	if second.Action == nil || second.Action.Name != "editor.delete_line" {
		t.Fatalf("second 'd' Action = %+v, want editor.delete_line", second.Action)
	}
	if m.PendingDelete() {
		t.Error("PendingDelete should clear after dd")
	}
}

func TestNormalModeColonFocusesPrompt(t *testing.T) {
	m := NewNormalMode()
	result := m.HandleUnmapped(key.NewRuneEvent(':', key.ModNone), NewContext())
	if result.Action == nil || result.Action.Name != "prompt.focus" {
		t.Fatalf("Action = %+v, want prompt.focus", result.Action)
	}
}

func TestInsertMode(t *testing.T) {
	m := NewInsertMode()

	if m.Name() != ModeInsert {
		t.Errorf("Name() = %q, want %q", m.Name(), ModeInsert)
	}
	if m.DisplayName() != "INSERT" {
		t.Errorf("DisplayName() = %q, want %q", m.DisplayName(), "INSERT")
	}
	if m.CursorStyle() != CursorBar {
		t.Errorf("CursorStyle() = %v, want CursorBar", m.CursorStyle())
	}
}

func TestInsertModeHandleUnmapped(t *testing.T) {
	m := NewInsertMode()
	ctx := NewContext()
	_ = m.Enter(ctx)

	event := key.NewRuneEvent('a', key.ModNone)
	result := m.HandleUnmapped(event, ctx)
	if !result.Consumed {
		t.Error("printable char should be consumed")
	}
	if result.InsertText != "a" {
		t.Errorf("InsertText = %q, want %q", result.InsertText, "a")
	}

	event = key.NewRuneEvent('a', key.ModCtrl)
	result = m.HandleUnmapped(event, ctx)
	if result.Consumed {
		t.Error("Ctrl+a should not be consumed as text")
	}
}

func TestInsertModeEscapeReturnsToNormal(t *testing.T) {
	m := NewInsertMode()
	result := m.HandleUnmapped(key.NewSpecialEvent(key.KeyEscape, key.ModNone), NewContext())
	if result.Action == nil || result.Action.Name != "mode.normal" {
		t.Fatalf("Action = %+v, want mode.normal", result.Action)
	}
}

func TestInsertModeEnterEmitsNewline(t *testing.T) {
	m := NewInsertMode()
	result := m.HandleUnmapped(key.NewSpecialEvent(key.KeyEnter, key.ModNone), NewContext())
	if result.Action == nil || result.Action.Name != "editor.newline" {
		t.Fatalf("Action = %+v, want editor.newline", result.Action)
	}
}
