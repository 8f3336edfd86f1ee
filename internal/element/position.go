package element

// Relation classifies where a Position's offset sits with respect to
// its magnitude.
type Relation int

const (
	// Before means the offset is negative: before the datum.
	Before Relation = -1
	// Within means 0 <= offset <= magnitude.
	Within Relation = 0
	// After means the offset exceeds the magnitude.
	After Relation = 1
)

// Position is the mutable triple of spec §3: an origin (Datum), a
// cursor relative to the origin (Offset), and a range length
// (Magnitude). Arithmetic methods preserve the absolute position
// Get() == Datum+Offset under reference-space edits whenever the edit
// does not remove the position itself.
type Position struct {
	Datum     int
	Offset    int
	Magnitude int
}

// Minimum is the absolute start of the range (the datum).
func (p *Position) Minimum() int { return p.Datum }

// Maximum is the absolute end of the range (datum + magnitude).
func (p *Position) Maximum() int { return p.Datum + p.Magnitude }

// Get returns the absolute position datum+offset.
func (p *Position) Get() int { return p.Datum + p.Offset }

// Set assigns the absolute position, recomputing Offset. It returns the
// change that was applied to Offset.
func (p *Position) Set(position int) int {
	next := position - p.Datum
	change := p.Offset - next
	p.Offset = next
	return change
}

// Configure initializes datum, magnitude, and offset directly.
func (p *Position) Configure(datum, magnitude, offset int) {
	p.Datum = datum
	p.Magnitude = magnitude
	p.Offset = offset
}

// Snapshot returns the absolute (start, offset, stop) triple.
func (p *Position) Snapshot() [3]int {
	start := p.Datum
	return [3]int{start, start + p.Offset, start + p.Magnitude}
}

// Restore reassigns datum/offset/magnitude from an absolute triple
// produced by Snapshot.
func (p *Position) Restore(s [3]int) {
	p.Datum = s[0]
	p.Offset = s[1] - s[0]
	p.Magnitude = s[2] - s[0]
}

// Update shifts Offset by quantity; negative quantities move it down.
func (p *Position) Update(quantity int) {
	p.Offset += quantity
}

// Constrain clamps Offset to [0, Magnitude], returning the amount the
// offset was out of bounds by (positive if it exceeded Magnitude,
// negative if it was below zero).
func (p *Position) Constrain() int {
	o := p.Offset
	if o > p.Magnitude {
		p.Offset = p.Magnitude
	} else if o < 0 {
		p.Offset = 0
	}
	return o - p.Offset
}

// Collapse moves the datum to the current offset position and zeros
// offset and magnitude, returning the prior offset.
func (p *Position) Collapse() int {
	o := p.Offset
	p.Datum += o
	p.Offset = 0
	p.Magnitude = 0
	return o
}

// Relation reports where Offset sits relative to [0, Magnitude].
func (p *Position) Relation() Relation {
	switch {
	case p.Offset < 0:
		return Before
	case p.Offset > p.Magnitude:
		return After
	default:
		return Within
	}
}

// Insert records that quantity units were added at offset in the
// reference space, per spec §3: insertions within or adjacent to the
// range expand the range, and the absolute position is preserved
// unless the insertion occurs at or before it, in which case the
// position moves forward by quantity.
func (p *Position) Insert(offset, quantity int) {
	position := p.Get()
	if offset <= position {
		position += quantity
	}

	if offset < p.Datum {
		p.Datum += quantity
	} else if offset <= p.Datum+p.Magnitude {
		p.Magnitude += quantity
	}

	p.Set(position)
}

// Delete records that quantity units were removed at offset in the
// reference space. Deletions that overlap the range reduce its
// magnitude by the intersection; a position inside the removed span
// snaps to the deletion's start (the edit's end from the position's
// perspective), matching spec §8's Position-arithmetic invariant.
func (p *Position) Delete(offset, quantity int) {
	roffset := offset - p.Datum
	end := roffset + quantity

	if p.Offset >= roffset {
		if p.Offset >= end {
			p.Update(-quantity)
		} else {
			p.Offset = roffset
		}
	}
	position := p.Get()

	if roffset >= p.Magnitude {
		return
	}
	if end < 0 {
		p.Datum -= quantity
		p.Set(position)
		return
	}

	overlapEnd := end
	if overlapEnd > p.Magnitude {
		overlapEnd = p.Magnitude
	}
	overlapStart := roffset
	if overlapStart < 0 {
		overlapStart = 0
	}
	p.Magnitude -= overlapEnd - overlapStart

	if roffset > 0 {
		return
	}

	p.Datum += roffset
	p.Set(position)
}

// Changed applies either Insert or Delete depending on the sign of
// quantity, per spec §3's "changed(offset, ±quantity)" contract. A
// zero quantity is a no-op.
func (p *Position) Changed(offset, quantity int) {
	switch {
	case quantity > 0:
		p.Insert(offset, quantity)
	case quantity < 0:
		p.Delete(offset, -quantity)
	}
}
