package delta

// Snapshot is a version identifier for a Log, restated from the tuple
// `(committed, collapsed_counter, -len(future) or none)` of
// original_source/syntax/delta.py as a plain struct: FutureLen holds
// the length of Log.future at the moment the snapshot was taken (not a
// negated Python slice index), which Since uses to find what has been
// added to future since.
type Snapshot struct {
	Committed int
	Collapsed int
	FutureLen int
}

// Log is the ordered record vector of spec §4.2, with the three
// cursors into it: Committed (records applied to the element store),
// Count (records written including uncommitted), and Future (records
// retracted by undo, available for redo).
type Log struct {
	records   []Record
	count     int
	committed int
	collapsed int
	future    []Record
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// Write appends record, advancing Count.
func (l *Log) Write(r Record) {
	l.records = append(l.records, r)
	l.count++
}

// Count is the number of records written, including uncommitted ones.
func (l *Log) Count() int { return l.count }

// Committed is the number of records applied to the element store.
func (l *Log) Committed() int { return l.committed }

// Pending returns the uncommitted records, records[committed:count).
func (l *Log) Pending() []Record {
	return l.records[l.committed:l.count]
}

// Apply runs records [committed, count) forward against target.
func (l *Log) Apply(target Target) {
	for _, r := range l.records[l.committed:l.count] {
		r.Apply(target)
	}
}

// Retract runs records [committed, count) backward against target, in
// reverse order.
func (l *Log) Retract(target Target) {
	pending := l.records[l.committed:l.count]
	for i := len(pending) - 1; i >= 0; i-- {
		pending[i].Retract(target)
	}
}

// Track reports every pending record to observer, in write order.
func (l *Log) Track(observer Observer) {
	for _, r := range l.records[l.committed:l.count] {
		r.Track(observer)
	}
}

// Commit advances committed to count. The collapse counter is reset
// only when there were pending records to commit; a Commit with
// nothing pending leaves it as it is.
func (l *Log) Commit() {
	if l.committed != l.count {
		l.collapsed = 0
	}
	l.committed = l.count
}

// Abort removes every record written since committed. Not normally
// used directly — a failed edit mid-transaction should prefer Undo,
// since deleting records can leave attached views with a screen that
// no longer matches any log state. It exists for the checkpoint-group
// transactional-abort path described in spec §7.
func (l *Log) Abort() {
	l.records = l.records[:l.committed]
	l.count = l.committed
	l.collapsed = 0
}

// Collapse folds the leading records of the pending (uncommitted)
// region into the last committed record, while Combine succeeds,
// incrementing the collapse counter once per fold. It requires at
// least one committed record to fold into; called with nothing
// committed, it is a no-op. Typing one character at a time commits
// after the first keystroke and leaves subsequent keystrokes pending
// until Collapse folds them into that committed record in place.
func (l *Log) Collapse() {
	if l.committed == 0 {
		return
	}
	ci := l.committed - 1
	current := l.records[ci]

	i := 0
	for _, r := range l.records[l.committed:l.count] {
		merged, ok := current.Combine(r)
		if !ok {
			break
		}
		current = merged
		l.collapsed++
		i++
	}

	l.records[ci] = current
	l.records = append(l.records[:l.committed], l.records[l.committed+i:]...)
	l.count -= i
}

// Checkpoint appends a Checkpoint record and commits, so any
// uncommitted writes become part of the group the Checkpoint closes.
// Two consecutive Checkpoints collapse into one: Checkpoint is only
// appended if the log is empty or its last record is not already a
// Checkpoint.
func (l *Log) Checkpoint(when int64) {
	if len(l.records) > 0 {
		if _, ok := l.records[len(l.records)-1].(Checkpoint); ok {
			return
		}
	}
	l.Write(Checkpoint{When: when})
	l.Commit()
}

// Undo retracts records affecting target until quantity checkpoints
// have been traversed or the beginning of the log is reached. It
// forces a checkpoint first (so any uncommitted typing is grouped),
// then moves the traversed records from the committed past onto the
// future stack (most-recently-undone-first), returning their inverses
// in application order for the caller to apply to its target.
func (l *Log) Undo(quantity int) []Record {
	l.Checkpoint(0)
	quantity++

	var transfer []Record
	i := l.committed - 1
	for ; i >= 0; i-- {
		r := l.records[i]
		transfer = append(transfer, r)
		if _, ok := r.(Checkpoint); ok {
			quantity--
			if quantity == 0 {
				break
			}
		}
	}
	if i < 0 {
		i = 0
	}

	l.records = l.records[:i]
	l.committed -= len(transfer)
	l.count -= len(transfer)
	l.collapsed = 0

	l.future = append(append([]Record{}, transfer...), l.future...)

	inverses := make([]Record, len(transfer))
	for idx, r := range transfer {
		inverses[idx] = r.Invert()
	}
	return inverses
}

// Redo replays records from the future stack until quantity
// checkpoints have been traversed or the future is exhausted,
// returning the records to apply to target in application order.
func (l *Log) Redo(quantity int) []Record {
	if len(l.future) > 0 {
		if _, ok := l.future[0].(Checkpoint); ok {
			quantity++
		}
	}

	var transfer []Record
	consumed := 0
	for _, r := range l.future {
		if _, ok := r.(Checkpoint); ok {
			quantity--
			if quantity == 0 {
				break
			}
		}
		transfer = append(transfer, r)
		consumed++
	}
	if quantity > 0 {
		consumed = len(l.future)
		transfer = append([]Record{}, l.future...)
	}

	reversed := make([]Record, len(transfer))
	for i, r := range transfer {
		reversed[len(transfer)-1-i] = r
	}

	l.committed += len(reversed)
	l.count += len(reversed)
	l.collapsed = 0
	l.records = append(l.records, reversed...)
	l.future = l.future[consumed:]

	return reversed
}

// Snapshot captures the log's current version.
func (l *Log) Snapshot() Snapshot {
	return Snapshot{Committed: l.committed, Collapsed: l.collapsed, FutureLen: len(l.future)}
}

// Since yields the ordered records required to move a copy of the
// element store from snapshot s's state to the log's current state:
// any record that a Collapse folded away since s (detected by the
// committed index matching but the collapse counter having advanced)
// is recovered from the tail of the committed records; then every
// record written since s is played forward; then the inverse of every
// record added to future since s is played forward (undoing what was
// undone after s was taken).
func (l *Log) Since(s Snapshot) func(func(Record) bool) {
	return func(yield func(Record) bool) {
		if s.Committed == l.committed && s.Collapsed < l.collapsed {
			for i := s.Committed - 1; i >= 0; i-- {
				if _, ok := l.records[i].(Checkpoint); ok {
					continue
				}
				if u, ok := l.records[i].(Update); ok {
					if !yield(u) {
						return
					}
				}
				break
			}
		}

		start := s.Committed
		if start > l.count {
			start = l.count
		}
		for _, r := range l.records[start:l.count] {
			if !yield(r) {
				return
			}
		}

		newFuture := len(l.future) - s.FutureLen
		if newFuture < 0 {
			newFuture = 0
		}
		if newFuture > len(l.future) {
			newFuture = len(l.future)
		}
		for _, r := range l.future[:newFuture] {
			if !yield(r.Invert()) {
				return
			}
		}
	}
}
