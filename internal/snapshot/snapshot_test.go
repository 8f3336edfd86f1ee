package snapshot

import (
	"bytes"
	"testing"
)

func sample() Snapshot {
	return Snapshot{
		Title:      "keystorm session",
		FocusFrame: 0,
		Frames: []Frame{
			{
				Layout: []LayoutColumn{{Divisions: 2}, {Divisions: 1, Width: 40}},
				Verticals: [][]Division{
					{
						{Descriptors: []Descriptor{{SystemURI: DefaultSystemURI, Path: "/home/user/main.go", ViewOffset: 0, Line: 3, Column: 5}}, Level: 0},
						{Descriptors: []Descriptor{{SystemURI: DefaultSystemURI, Path: "/home/user/util.go", ViewOffset: 12, Line: 0, Column: 0}}, Level: 1},
					},
					{
						{Descriptors: []Descriptor{
							{SystemURI: DefaultSystemURI, Path: "/home/user/README.md", ViewOffset: 0, Line: 0, Column: 0},
							{SystemURI: DefaultSystemURI, Path: "/home/user/old.md", ViewOffset: 0, Line: 0, Column: 0},
						}, Level: 0},
					},
				},
				FocusVertical: 0,
				FocusDivision: 1,
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	orig := sample()
	var buf bytes.Buffer
	if err := Write(&buf, orig); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Title != orig.Title || got.FocusFrame != orig.FocusFrame {
		t.Fatalf("leader mismatch: got %+v", got)
	}
	if len(got.Frames) != 1 {
		t.Fatalf("frame count = %d, want 1", len(got.Frames))
	}
	gf, of := got.Frames[0], orig.Frames[0]
	if len(gf.Layout) != len(of.Layout) {
		t.Fatalf("layout length mismatch")
	}
	for i := range of.Layout {
		if gf.Layout[i] != of.Layout[i] {
			t.Fatalf("layout[%d] = %+v, want %+v", i, gf.Layout[i], of.Layout[i])
		}
	}
	if gf.FocusVertical != of.FocusVertical || gf.FocusDivision != of.FocusDivision {
		t.Fatalf("frame focus mismatch: %+v", gf)
	}
	for vi := range of.Verticals {
		for di := range of.Verticals[vi] {
			gd := gf.Verticals[vi][di]
			od := of.Verticals[vi][di]
			if gd.Level != od.Level {
				t.Fatalf("division (%d,%d) level = %d, want %d", vi, di, gd.Level, od.Level)
			}
			if len(gd.Descriptors) != len(od.Descriptors) {
				t.Fatalf("division (%d,%d) descriptor count = %d, want %d", vi, di, len(gd.Descriptors), len(od.Descriptors))
			}
			for k := range od.Descriptors {
				if gd.Descriptors[k] != od.Descriptors[k] {
					t.Fatalf("division (%d,%d) descriptor[%d] = %+v, want %+v", vi, di, k, gd.Descriptors[k], od.Descriptors[k])
				}
			}
		}
	}
}

func TestParseDescriptorRoundTrip(t *testing.T) {
	d := Descriptor{SystemURI: DefaultSystemURI, Path: "/a/b/c.go", ViewOffset: 7, Line: 2, Column: 9}
	got, err := ParseDescriptor(d.String())
	if err != nil {
		t.Fatalf("ParseDescriptor: %v", err)
	}
	if got != d {
		t.Fatalf("got %+v, want %+v", got, d)
	}
}

func TestParseLayoutColumn(t *testing.T) {
	cases := []struct {
		tok  string
		want LayoutColumn
	}{
		{"3", LayoutColumn{Divisions: 3}},
		{"2*40", LayoutColumn{Divisions: 2, Width: 40}},
	}
	for _, c := range cases {
		got, err := ParseLayoutColumn(c.tok)
		if err != nil {
			t.Fatalf("ParseLayoutColumn(%q): %v", c.tok, err)
		}
		if got != c.want {
			t.Fatalf("ParseLayoutColumn(%q) = %+v, want %+v", c.tok, got, c.want)
		}
		if got.String() != c.tok {
			t.Fatalf("round-trip String() = %q, want %q", got.String(), c.tok)
		}
	}
}

func TestReadRejectsEmptyInput(t *testing.T) {
	if _, err := Read(bytes.NewReader(nil)); err == nil {
		t.Fatal("expected error reading empty snapshot")
	}
}

func TestReadRejectsUnterminatedDivision(t *testing.T) {
	data := "title\n\t0 1\n1\n\tfile:///a/b/0:0:0\n"
	if _, err := Read(bytes.NewBufferString(data)); err == nil {
		t.Fatal("expected error for missing '-' delimiter")
	}
}
