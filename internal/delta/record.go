// Package delta implements the delta record types and delta log of
// spec §3 and §4.2: an ordered, undo/redo-capable change log sitting
// between a Resource's editing methods and its element store.
//
// The record types and the Log's combine/collapse/undo/redo/since
// semantics are ported directly from original_source/syntax/delta.py
// (the upstream `Update`, `Lines`, `Checkpoint`, and `Log` classes);
// the Go shape — a small closed interface implemented by value types,
// rather than Python's duck-typed Protocol — follows the tagged-union
// convention internal/engine/history uses for its Command interface.
package delta

// Target is the line store a record mutates. It corresponds to
// Resource.elements in spec §3: a sequence of encoded line strings
// addressed by element offset.
type Target interface {
	// Line returns the encoded line at element.
	Line(element int) string
	// SetLine replaces the encoded line at element.
	SetLine(element int, s string)
	// SpliceLines removes deleteCount lines starting at element and
	// inserts insertion in their place.
	SpliceLines(element, deleteCount int, insertion []string)
	// LineCount returns the current number of lines.
	LineCount() int
}

// Observer receives change summaries as a record is tracked, per the
// Summary protocol of original_source/syntax/delta.py. Views use this
// to drive their image's v_update compiler without needing to inspect
// the target directly.
type Observer interface {
	// LineDelta reports that lines were deleted and inserted at
	// element offset lnOffset.
	LineDelta(lnOffset, deleted, inserted int)
	// CodepointDelta reports that codepoints were deleted and inserted
	// at cpOffset within the line identified by lnOffset.
	CodepointDelta(lnOffset, cpOffset, deleted, inserted int)
}

// Record is the closed sum type of delta records: Update, Lines,
// Checkpoint, and Cursor all implement it.
type Record interface {
	// Span reports the element offset and the count of elements
	// touched by this record.
	Span() (element, count int)
	// Change reports the change in element (line) count caused by
	// applying this record. Always zero for Update and Cursor.
	Change() int
	// Apply performs the change against target.
	Apply(target Target)
	// Retract performs the inverse of Apply, restoring target to its
	// pre-Apply state.
	Retract(target Target)
	// Invert constructs the record that reverses this one's effect.
	Invert() Record
	// Revert reconstructs an idempotent no-op version of this record
	// (same shape, but insertion == deletion), used when a record must
	// be retained structurally (e.g. in future stacks) without being
	// allowed to perform a destructive replay.
	Revert() Record
	// Track reports this record's effect to observer.
	Track(observer Observer)
	// Combine attempts to merge following into the receiver, returning
	// the merged record and true on success, or (nil, false) if the two
	// records cannot be combined.
	Combine(following Record) (Record, bool)
}

// Update is an intra-line splice at a codepoint position: it replaces
// the codepoint range [position, position+len(deletion)) of the line
// identified by element with insertion.
type Update struct {
	Element   int
	Position  int
	Insertion string
	Deletion  string
}

func (u Update) Span() (int, int) { return u.Element, 1 }
func (u Update) Change() int      { return 0 }

func (u Update) Apply(target Target) {
	e := []rune(target.Line(u.Element))
	stop := u.Position + len([]rune(u.Deletion))
	target.SetLine(u.Element, string(e[:u.Position])+u.Insertion+string(e[stop:]))
}

func (u Update) Retract(target Target) {
	e := []rune(target.Line(u.Element))
	stop := u.Position + len([]rune(u.Insertion))
	target.SetLine(u.Element, string(e[:u.Position])+u.Deletion+string(e[stop:]))
}

func (u Update) Invert() Record {
	return Update{Element: u.Element, Position: u.Position, Insertion: u.Deletion, Deletion: u.Insertion}
}

func (u Update) Revert() Record {
	if u.Insertion == u.Deletion {
		return u
	}
	d := u.Insertion
	if d == "" {
		d = u.Deletion
	}
	return Update{Element: u.Element, Position: u.Position, Insertion: d, Deletion: d}
}

func (u Update) Track(observer Observer) {
	observer.CodepointDelta(u.Element, u.Position, len([]rune(u.Deletion)), len([]rune(u.Insertion)))
}

func (u Update) Combine(following Record) (Record, bool) {
	f, ok := following.(Update)
	if !ok || f.Element != u.Element {
		return nil, false
	}

	if u.Insertion != "" {
		if u.Deletion != "" {
			return nil, false
		}
		stop := u.Position + len([]rune(u.Insertion))
		fp := f.Position
		if fp < u.Position || fp > stop {
			return nil, false
		}
		rp := fp - u.Position

		insRunes := []rune(u.Insertion)
		if rp < 0 || rp > len(insRunes) {
			return nil, false
		}

		if f.Deletion == "" {
			merged := string(insRunes[:rp]) + f.Insertion + string(insRunes[rp:])
			return Update{Element: u.Element, Position: u.Position, Insertion: merged, Deletion: u.Deletion}, true
		}

		if f.Insertion == "" && fp < stop {
			delRunes := []rune(f.Deletion)
			if rp+len(delRunes) > len(insRunes) {
				return nil, false
			}
			if string(insRunes[rp:rp+len(delRunes)]) == f.Deletion {
				merged := string(insRunes[:rp]) + string(insRunes[rp+len(delRunes):])
				return Update{Element: u.Element, Position: u.Position, Insertion: merged, Deletion: u.Deletion}, true
			}
		}
		return nil, false
	}

	if u.Deletion != "" && f.Insertion == "" {
		if f.Position == u.Position {
			return Update{Element: u.Element, Position: u.Position, Insertion: "", Deletion: u.Deletion + f.Deletion}, true
		}
		end := f.Position + len([]rune(f.Deletion))
		if end == u.Position {
			return Update{Element: u.Element, Position: f.Position, Insertion: "", Deletion: f.Deletion + u.Deletion}, true
		}
	}

	return nil, false
}

// Lines is a whole-line insertion/deletion at element offset.
type Lines struct {
	Element   int
	Insertion []string
	Deletion  []string
}

func (l Lines) Span() (int, int) {
	n := len(l.Insertion)
	if len(l.Deletion) > n {
		n = len(l.Deletion)
	}
	return l.Element, n
}

func (l Lines) Change() int { return len(l.Insertion) - len(l.Deletion) }

func (l Lines) Apply(target Target) {
	target.SpliceLines(l.Element, len(l.Deletion), l.Insertion)
}

func (l Lines) Retract(target Target) {
	target.SpliceLines(l.Element, len(l.Insertion), l.Deletion)
}

func (l Lines) Invert() Record {
	return Lines{Element: l.Element, Insertion: l.Deletion, Deletion: l.Insertion}
}

func (l Lines) Revert() Record {
	if sameLines(l.Insertion, l.Deletion) {
		return l
	}
	d := l.Insertion
	if len(d) == 0 {
		d = l.Deletion
	}
	return Lines{Element: l.Element, Insertion: d, Deletion: d}
}

func (l Lines) Track(observer Observer) {
	observer.LineDelta(l.Element, len(l.Deletion), len(l.Insertion))
}

// Combine always refuses: successive whole-line edits are not folded,
// matching original_source/syntax/delta.py's Lines.combine.
func (l Lines) Combine(Record) (Record, bool) { return nil, false }

func sameLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Checkpoint is a logical boundary for undo/redo grouping. It never
// mutates the target.
type Checkpoint struct {
	When int64
}

func (c Checkpoint) Span() (int, int)        { return 0, 0 }
func (c Checkpoint) Change() int             { return 0 }
func (c Checkpoint) Apply(Target)            {}
func (c Checkpoint) Retract(Target)          {}
func (c Checkpoint) Invert() Record          { return c }
func (c Checkpoint) Revert() Record          { return c }
func (c Checkpoint) Track(Observer)          {}

func (c Checkpoint) Combine(following Record) (Record, bool) {
	f, ok := following.(Checkpoint)
	if !ok {
		return nil, false
	}
	when := c.When
	if f.When < when {
		when = f.When
	}
	return Checkpoint{When: when}, true
}

// Cursor is a pure tracking hint: it carries no element mutation and
// exists only so observers learn about cursor motion that did not
// arise from an Update or Lines record (e.g. a bare cursor move).
type Cursor struct {
	Element  int
	LnCount  int
	Position int
	CpCount  int
}

func (c Cursor) Span() (int, int) { return c.Element, 0 }
func (c Cursor) Change() int      { return 0 }
func (c Cursor) Apply(Target)     {}
func (c Cursor) Retract(Target)   {}
func (c Cursor) Invert() Record   { return c }
func (c Cursor) Revert() Record   { return c }

func (c Cursor) Track(observer Observer) {
	observer.LineDelta(c.Element, 0, 0)
	observer.CodepointDelta(c.Element, c.Position, 0, 0)
}

// Combine never merges: Cursor records are point-in-time hints.
func (c Cursor) Combine(Record) (Record, bool) { return nil, false }
