package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keystorm/keystorm/internal/alignment"
	"github.com/keystorm/keystorm/internal/element"
	"github.com/keystorm/keystorm/internal/frame"
	"github.com/keystorm/keystorm/internal/input/mode"
	"github.com/keystorm/keystorm/internal/reform"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestSessionOpenLoadsLines(t *testing.T) {
	path := writeTempFile(t, "alpha\nbeta\ngamma\n")
	s := New(nil, nil)

	res, err := s.Open(path, reform.Default())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := res.LnCount(); got != 3 {
		t.Fatalf("expected 3 lines, got %d", got)
	}
	line, err := res.Sole(0)
	if err != nil {
		t.Fatalf("Sole: %v", err)
	}
	if line.Content != "alpha" {
		t.Fatalf("expected %q, got %q", "alpha", line.Content)
	}
}

func TestSessionOpenTwiceSharesResource(t *testing.T) {
	path := writeTempFile(t, "one\n")
	s := New(nil, nil)

	first, err := s.Open(path, reform.Default())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	second, err := s.Open(path, reform.Default())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if first != second {
		t.Fatal("expected second Open to return the same Resource instance")
	}
}

func TestSessionOpenMissingFileStartsEmpty(t *testing.T) {
	s := New(nil, nil)
	res, err := s.Open(filepath.Join(t.TempDir(), "missing.txt"), reform.Default())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := res.LnCount(); got != 1 {
		t.Fatalf("expected 1 empty line for a new buffer, got %d", got)
	}
}

func TestSessionPlaceFocusesPane(t *testing.T) {
	path := writeTempFile(t, "hello\n")
	s := New(nil, nil)

	area := alignment.Area{Lines: 24, Span: 80}
	idx := s.NewFrame(area, []frame.LayoutEntry{{Divisions: 1}})

	if err := s.Place(idx, 0, 0, path, reform.Default()); err != nil {
		t.Fatalf("Place: %v", err)
	}
	focus := s.Focus()
	if focus == nil {
		t.Fatal("expected a focused pane")
	}
	if focus.Path != path {
		t.Fatalf("expected focused path %q, got %q", path, focus.Path)
	}
}

func TestSessionPlaceWiresHeaderAndFooter(t *testing.T) {
	path := writeTempFile(t, "hello\n")
	s := New(nil, nil)

	area := alignment.Area{Lines: 24, Span: 80}
	idx := s.NewFrame(area, []frame.LayoutEntry{{Divisions: 1}})

	if err := s.Place(idx, 0, 0, path, reform.Default()); err != nil {
		t.Fatalf("Place: %v", err)
	}
	focus := s.Focus()
	if focus.Header == nil {
		t.Fatal("expected a location header refraction")
	}
	if focus.Footer == nil {
		t.Fatal("expected a prompt footer refraction")
	}
}

func TestSessionSubmitAndRecallPrompt(t *testing.T) {
	path := writeTempFile(t, "hello\n")
	s := New(nil, nil)

	area := alignment.Area{Lines: 24, Span: 80}
	idx := s.NewFrame(area, []frame.LayoutEntry{{Divisions: 1}})
	if err := s.Place(idx, 0, 0, path, reform.Default()); err != nil {
		t.Fatalf("Place: %v", err)
	}

	footer := s.Focus().Footer
	if err := footer.Source.InsertCodepoints(0, 0, "edit other.txt"); err != nil {
		t.Fatalf("InsertCodepoints: %v", err)
	}
	cmd, err := s.SubmitPrompt()
	if err != nil {
		t.Fatalf("SubmitPrompt: %v", err)
	}
	if len(cmd.Instructions) != 1 || cmd.Instructions[0].Text != "edit other.txt" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	footer.Revisions.Push("previous")
	ok, err := s.RecallPrompt(-1)
	if err != nil || !ok {
		t.Fatalf("RecallPrompt(-1) = %v, %v", ok, err)
	}
}

func TestSessionEditLocationOpensComposedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.txt")
	if err := os.WriteFile(path, []byte("line one\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	target := filepath.Join(dir, "target.txt")
	if err := os.WriteFile(target, []byte("line two\n"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}

	s := New(nil, nil)
	area := alignment.Area{Lines: 24, Span: 80}
	idx := s.NewFrame(area, []frame.LayoutEntry{{Divisions: 1}})
	if err := s.Place(idx, 0, 0, path, reform.Default()); err != nil {
		t.Fatalf("Place: %v", err)
	}

	header := s.Focus().Header
	n := header.Source.LnCount()
	if err := header.Source.DeleteLines(0, n); err != nil {
		t.Fatalf("DeleteLines: %v", err)
	}
	if err := header.Source.InsertLines(0, []element.Line{{Content: dir}, {Content: "target.txt"}}); err != nil {
		t.Fatalf("InsertLines: %v", err)
	}

	if err := s.EditLocation(); err != nil {
		t.Fatalf("EditLocation: %v", err)
	}
	if s.Focus().Path != target {
		t.Fatalf("expected focused path %q, got %q", target, s.Focus().Path)
	}
}

func TestSessionDispatchModeSwitch(t *testing.T) {
	s := New(nil, nil)
	if got := s.Keyboard().CurrentName(); got != mode.ModeNormal {
		t.Fatalf("expected initial mode %q, got %q", mode.ModeNormal, got)
	}

	s.dispatch(mode.Action{Name: "mode.switch", Args: map[string]any{"mode": mode.ModeInsert}})

	if got := s.Keyboard().CurrentName(); got != mode.ModeInsert {
		t.Fatalf("expected mode %q after dispatch, got %q", mode.ModeInsert, got)
	}
}

func TestSessionQuit(t *testing.T) {
	s := New(nil, nil)
	if s.Quitting() {
		t.Fatal("expected Quitting() false initially")
	}
	s.Quit()
	if !s.Quitting() {
		t.Fatal("expected Quitting() true after Quit()")
	}
	if err := s.Run(); err != nil {
		t.Fatalf("Run with nil device and quit set: %v", err)
	}
}
