package location

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keystorm/keystorm/internal/fields"
)

func TestComposeRelative(t *testing.T) {
	got := Compose([]string{"usr/local", "bin/tool"}, "/dev/null")
	want := "/usr/local/bin/tool"
	if got != want {
		t.Fatalf("Compose() = %q, want %q", got, want)
	}
}

func TestComposeAbsoluteIgnoresContext(t *testing.T) {
	got := Compose([]string{"usr/local", "/etc/passwd"}, "/dev/null")
	if got != "/etc/passwd" {
		t.Fatalf("Compose() = %q, want /etc/passwd", got)
	}
}

func TestComposeAllBlankFallsBackToDefault(t *testing.T) {
	got := Compose([]string{"  ", ""}, "/dev/null")
	if got != "/dev/null" {
		t.Fatalf("Compose() = %q, want /dev/null", got)
	}
}

func TestStructurePathEmptyLine(t *testing.T) {
	out := StructurePath("/tmp", "")
	if len(out) != 2 {
		t.Fatalf("StructurePath(\"\") has %d fields, want 2", len(out))
	}
	if out[0].Class != fields.ClassIndentation || out[1].Class != fields.ClassTrailingWhitespace {
		t.Fatalf("unexpected classes: %+v", out)
	}
}

func TestStructurePathClassifiesExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	out := StructurePath(dir, "sub")
	foundDir := false
	for _, f := range out {
		if f.Text == "sub" && f.Class == fields.ClassPathDirectory {
			foundDir = true
		}
	}
	if !foundDir {
		t.Fatalf("expected a path-directory field for %q, got %+v", sub, out)
	}
}

func TestStructurePathMissingFile(t *testing.T) {
	dir := t.TempDir()
	out := StructurePath(dir, "nope")
	last := out[len(out)-2] // before trailing-whitespace
	if last.Class != fields.ClassFileNotFound {
		t.Fatalf("expected file-not-found, got %s", last.Class)
	}
}

func TestDetermineRelative(t *testing.T) {
	ctx, rel := Determine("/a/b", "/a/b/c/d")
	if ctx != "/a/b" || rel != "c/d" {
		t.Fatalf("Determine() = (%q, %q)", ctx, rel)
	}
}

func TestDetermineUnrelatedIsAbsolute(t *testing.T) {
	ctx, rel := Determine("/a/b", "/x/y")
	if ctx != "/a/b" || rel != "/x/y" {
		t.Fatalf("Determine() = (%q, %q)", ctx, rel)
	}
}
