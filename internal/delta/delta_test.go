package delta

// stringTarget is a minimal Target backed by a plain []string, used to
// exercise Record and Log semantics without the full element store.
type stringTarget struct {
	lines []string
}

func newStringTarget(lines ...string) *stringTarget {
	return &stringTarget{lines: append([]string{}, lines...)}
}

func (t *stringTarget) Line(element int) string { return t.lines[element] }
func (t *stringTarget) SetLine(element int, s string) { t.lines[element] = s }
func (t *stringTarget) LineCount() int { return len(t.lines) }

func (t *stringTarget) SpliceLines(element, deleteCount int, insertion []string) {
	tail := append([]string{}, t.lines[element+deleteCount:]...)
	head := append([]string{}, t.lines[:element]...)
	head = append(head, insertion...)
	t.lines = append(head, tail...)
}

type recordingObserver struct {
	lineDeltas      [][4]int
	codepointDeltas [][4]int
}

func (o *recordingObserver) LineDelta(lnOffset, deleted, inserted int) {
	o.lineDeltas = append(o.lineDeltas, [4]int{lnOffset, deleted, inserted, 0})
}

func (o *recordingObserver) CodepointDelta(lnOffset, cpOffset, deleted, inserted int) {
	o.codepointDeltas = append(o.codepointDeltas, [4]int{lnOffset, cpOffset, deleted, inserted})
}
