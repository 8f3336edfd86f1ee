package prompt

// Revisions is the command-line history stack a prompt Refraction
// keeps across activations. Spec §9 flags the source's merge
// semantics around empty-command reduction as partially ad-hoc; this
// reimplementation resolves the open question by defining revision
// merge as "discard consecutive equal revisions, then keep only the
// latest of each run" (see DESIGN.md).
type Revisions struct {
	entries []string
	cursor  int
}

// NewRevisions returns an empty revision stack.
func NewRevisions() *Revisions {
	return &Revisions{}
}

// Push records raw as the most recent revision, collapsing it with the
// previous entry if the two are equal, and resets the recall cursor to
// the end of the stack.
func (r *Revisions) Push(raw string) {
	if n := len(r.entries); n > 0 && r.entries[n-1] == raw {
		r.cursor = n
		return
	}
	r.entries = append(r.entries, raw)
	r.cursor = len(r.entries)
}

// Len reports how many revisions are stored.
func (r *Revisions) Len() int { return len(r.entries) }

// At returns the revision at index i, or "" if out of range.
func (r *Revisions) At(i int) string {
	if i < 0 || i >= len(r.entries) {
		return ""
	}
	return r.entries[i]
}

// Previous moves the recall cursor back one revision and returns it,
// or "" with ok=false if already at the oldest entry.
func (r *Revisions) Previous() (string, bool) {
	if r.cursor <= 0 {
		return "", false
	}
	r.cursor--
	return r.entries[r.cursor], true
}

// Next moves the recall cursor forward one revision and returns it; at
// the newest entry it returns "" (an empty line past the top of the
// stack) with ok=true so a caller can clear the prompt.
func (r *Revisions) Next() (string, bool) {
	if r.cursor >= len(r.entries) {
		return "", false
	}
	r.cursor++
	if r.cursor == len(r.entries) {
		return "", true
	}
	return r.entries[r.cursor], true
}

// ResetCursor moves the recall cursor back to the end of the stack,
// matching the behavior after a fresh Push.
func (r *Revisions) ResetCursor() {
	r.cursor = len(r.entries)
}
