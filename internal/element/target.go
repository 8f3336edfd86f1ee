package element

import (
	"github.com/keystorm/keystorm/internal/segment"
)

// storeTarget adapts a *segment.Sequence[string] of encoded lines to
// the delta.Target interface, so Records can apply/retract against it
// without depending on segment directly.
type storeTarget struct {
	seq *segment.Sequence[string]
}

func (t *storeTarget) Line(element int) string { return t.seq.Get(element) }

func (t *storeTarget) SetLine(element int, s string) { t.seq.Set(element, s) }

func (t *storeTarget) LineCount() int { return t.seq.Len() }

func (t *storeTarget) SpliceLines(element, deleteCount int, insertion []string) {
	if deleteCount > 0 {
		t.seq.Delete(element, element+deleteCount)
	}
	if len(insertion) > 0 {
		t.seq.Insert(element, insertion)
	}
}
