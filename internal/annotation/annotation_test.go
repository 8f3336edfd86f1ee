package annotation

import "testing"

func TestAddAndFor(t *testing.T) {
	s := New()
	if _, err := s.Add(Entry{Element: 3, Position: 1, Kind: "diagnostic", Text: "unused import"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(Entry{Element: 3, Position: 0, Kind: "completion", Text: "fmt.Println"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(Entry{Element: 5, Position: 0, Kind: "diagnostic", Text: "elsewhere"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got := s.For(3)
	if len(got) != 2 {
		t.Fatalf("For(3) returned %d entries, want 2", len(got))
	}
	if got[0].Position != 0 || got[1].Position != 1 {
		t.Fatalf("For(3) not sorted by position: %+v", got)
	}
	if got[0].Text != "fmt.Println" {
		t.Fatalf("unexpected entry: %+v", got[0])
	}
}

func TestMatchingKind(t *testing.T) {
	s := New()
	s.Add(Entry{Element: 0, Kind: "diagnostic-error"})
	s.Add(Entry{Element: 1, Kind: "diagnostic-warning"})
	s.Add(Entry{Element: 2, Kind: "completion"})

	got := s.MatchingKind("diagnostic-*")
	if len(got) != 2 {
		t.Fatalf("MatchingKind = %d entries, want 2: %+v", len(got), got)
	}
}

func TestRemoveAt(t *testing.T) {
	s := New()
	s.Add(Entry{Element: 0, Kind: "a"})
	s.Add(Entry{Element: 1, Kind: "b"})
	if err := s.RemoveAt(0); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	got := s.For(1)
	if len(got) != 1 || got[0].Kind != "b" {
		t.Fatalf("unexpected remaining entries: %+v", got)
	}
}

func TestEntryClass(t *testing.T) {
	e := Entry{Kind: "diagnostic"}
	if e.Class() != "field-annotation-diagnostic" {
		t.Fatalf("Class() = %s", e.Class())
	}
	plain := Entry{}
	if plain.Class() != "field-annotation" {
		t.Fatalf("Class() for empty kind = %s", plain.Class())
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected error parsing invalid JSON")
	}
}

func TestPrettyProducesMultilineOutput(t *testing.T) {
	s := New()
	s.Add(Entry{Element: 0, Kind: "a", Text: "x"})
	if len(s.Pretty()) <= len(s.Bytes()) {
		t.Fatalf("Pretty() did not expand document: %q vs %q", s.Pretty(), s.Bytes())
	}
}
