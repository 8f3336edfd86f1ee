// Package segment implements the segmented sequence of spec §4.1: an
// ordered list of elements stored as a list of chunks, giving amortized
// O(chunk) mutation near chunk boundaries instead of O(n) array
// shifting, without the balanced-tree bookkeeping of a rope.
//
// It is grounded on the chunk-splitting policy of
// internal/engine/rope/chunk.go, restated as a flat chunk list per
// spec §4.1 rather than a B+ tree: the segmented sequence backs the
// editor's line store, where chunk rebalancing is driven by edit
// locality, not by needing logarithmic access across a huge flat text.
package segment

// TargetChunkSize is the preferred number of elements per chunk. Chunks
// are allowed to grow up to 2x and shrink to empty before a partition
// pass reclaims them.
const TargetChunkSize = 64

// Sequence is a chunked ordered list of T.
type Sequence[T any] struct {
	chunks [][]T
}

// New creates an empty sequence.
func New[T any]() *Sequence[T] {
	return &Sequence[T]{chunks: [][]T{{}}}
}

// FromSlice builds a sequence from an initial slice of items, splitting
// it into chunks of TargetChunkSize.
func FromSlice[T any](items []T) *Sequence[T] {
	s := &Sequence[T]{}
	if len(items) == 0 {
		s.chunks = [][]T{{}}
		return s
	}
	for i := 0; i < len(items); i += TargetChunkSize {
		end := i + TargetChunkSize
		if end > len(items) {
			end = len(items)
		}
		chunk := make([]T, end-i)
		copy(chunk, items[i:end])
		s.chunks = append(s.chunks, chunk)
	}
	return s
}

// Len returns the total number of elements across all chunks.
func (s *Sequence[T]) Len() int {
	n := 0
	for _, c := range s.chunks {
		n += len(c)
	}
	return n
}

// address is a resolved (chunk index, intra-chunk offset) pair.
type address struct {
	chunk int
	intra int
}

// locate scans chunks accumulating lengths until offset lies inside a
// chunk, per spec §4.1's address-resolution rule. offset == Len() is a
// legal "end" address: it resolves to (len(chunks)-1, len(last chunk)).
func (s *Sequence[T]) locate(offset int) address {
	acc := 0
	for i, c := range s.chunks {
		if offset <= acc+len(c) && (offset < acc+len(c) || i == len(s.chunks)-1) {
			return address{chunk: i, intra: offset - acc}
		}
		acc += len(c)
	}
	// Past the end: clamp to the end of the last chunk.
	last := len(s.chunks) - 1
	if last < 0 {
		return address{}
	}
	return address{chunk: last, intra: len(s.chunks[last])}
}

// Get returns the element at offset. Panics if offset is out of range,
// matching slice semantics.
func (s *Sequence[T]) Get(offset int) T {
	a := s.locate(offset)
	if a.chunk >= len(s.chunks) || a.intra >= len(s.chunks[a.chunk]) {
		panic("segment: index out of range")
	}
	return s.chunks[a.chunk][a.intra]
}

// Set replaces the element at offset.
func (s *Sequence[T]) Set(offset int, v T) {
	a := s.locate(offset)
	s.chunks[a.chunk][a.intra] = v
}

// Slice returns a flattened copy of [start, stop).
func (s *Sequence[T]) Slice(start, stop int) []T {
	out := make([]T, 0, stop-start)
	for v := range s.Select(start, stop) {
		out = append(out, v)
	}
	return out
}

// Select returns an iterator over [start, stop), in order.
func (s *Sequence[T]) Select(start, stop int) func(func(T) bool) {
	return func(yield func(T) bool) {
		if start >= stop {
			return
		}
		a := s.locate(start)
		remaining := stop - start
		ci, ii := a.chunk, a.intra
		for remaining > 0 && ci < len(s.chunks) {
			chunk := s.chunks[ci]
			for ii < len(chunk) && remaining > 0 {
				if !yield(chunk[ii]) {
					return
				}
				ii++
				remaining--
			}
			ci++
			ii = 0
		}
	}
}

// Insert splices subseq into the sequence starting at offset. It splits
// the target chunk only when necessary, and prefers to append into the
// preceding chunk if the insertion point lies exactly on a chunk
// boundary and the neighboring chunk is empty (keeps repeated
// boundary-adjacent inserts, e.g. line-by-line loads, from leaving a
// trail of empty chunks behind).
func (s *Sequence[T]) Insert(offset int, subseq []T) {
	if len(subseq) == 0 {
		return
	}
	a := s.locate(offset)

	if a.intra == 0 && a.chunk > 0 && len(s.chunks[a.chunk-1]) == 0 {
		a.chunk--
		a.intra = 0
	}

	chunk := s.chunks[a.chunk]
	if a.intra == len(chunk) && len(chunk) == 0 {
		s.chunks[a.chunk] = append([]T{}, subseq...)
		s.rebalanceAround(a.chunk)
		return
	}

	head := append([]T{}, chunk[:a.intra]...)
	tail := append([]T{}, chunk[a.intra:]...)
	merged := append(head, subseq...)
	merged = append(merged, tail...)

	if len(merged) <= 2*TargetChunkSize {
		s.chunks[a.chunk] = merged
		s.rebalanceAround(a.chunk)
		return
	}
	replacement := chunkify(merged)
	s.chunks = replaceAt(s.chunks, a.chunk, a.chunk+1, replacement)
	s.rebalanceAround(a.chunk)
}

// Delete removes [start, stop). Whole chunks fully inside the range are
// dropped outright; the chunks at the edges are trimmed in place.
func (s *Sequence[T]) Delete(start, stop int) {
	if start >= stop {
		return
	}
	startAddr := s.locate(start)
	stopAddr := s.locate(stop)

	if startAddr.chunk == stopAddr.chunk {
		chunk := s.chunks[startAddr.chunk]
		s.chunks[startAddr.chunk] = append(append([]T{}, chunk[:startAddr.intra]...), chunk[stopAddr.intra:]...)
		s.rebalanceAround(startAddr.chunk)
		if len(s.chunks) == 0 {
			s.chunks = [][]T{{}}
		}
		return
	}

	head := s.chunks[startAddr.chunk][:startAddr.intra]
	tail := s.chunks[stopAddr.chunk][stopAddr.intra:]

	merged := append(append([]T{}, head...), tail...)
	replacement := chunkify(merged)

	s.chunks = replaceAt(s.chunks, startAddr.chunk, stopAddr.chunk+1, replacement)
	if len(s.chunks) == 0 {
		s.chunks = [][]T{{}}
	}
}

// Append adds items to the end of the sequence.
func (s *Sequence[T]) Append(items ...T) {
	s.Insert(s.Len(), items)
}

// Extend is an alias of Append kept for readability at call sites that
// are conceptually concatenating two sequences.
func (s *Sequence[T]) Extend(items []T) {
	s.Append(items...)
}

// Partition rebalances every chunk to TargetChunkSize, optionally
// replacing the sequence's contents with iterable first. Passing a nil
// iterable rebalances in place.
func (s *Sequence[T]) Partition(iterable []T) {
	var flat []T
	if iterable != nil {
		flat = iterable
	} else {
		flat = s.Slice(0, s.Len())
	}
	if len(flat) == 0 {
		s.chunks = [][]T{{}}
		return
	}
	s.chunks = chunkify(flat)
}

func chunkify[T any](flat []T) [][]T {
	if len(flat) == 0 {
		return [][]T{{}}
	}
	out := make([][]T, 0, len(flat)/TargetChunkSize+1)
	for i := 0; i < len(flat); i += TargetChunkSize {
		end := i + TargetChunkSize
		if end > len(flat) {
			end = len(flat)
		}
		out = append(out, append([]T{}, flat[i:end]...))
	}
	return out
}

// replaceAt replaces chunks[from:to] with replacement, splicing them
// into a fresh backing slice.
func replaceAt[T any](chunks [][]T, from, to int, replacement [][]T) [][]T {
	out := make([][]T, 0, len(chunks)-(to-from)+len(replacement))
	out = append(out, chunks[:from]...)
	out = append(out, replacement...)
	out = append(out, chunks[to:]...)
	return out
}

// rebalanceAround drops an empty chunk left behind by Insert/Delete
// near idx, and splits an oversized one. It only ever touches the
// chunk at idx, preserving the O(chunk) amortized bound.
func (s *Sequence[T]) rebalanceAround(idx int) {
	if idx < 0 || idx >= len(s.chunks) {
		return
	}
	chunk := s.chunks[idx]
	switch {
	case len(chunk) == 0 && len(s.chunks) > 1:
		s.chunks = append(s.chunks[:idx], s.chunks[idx+1:]...)
	case len(chunk) > 2*TargetChunkSize:
		mid := len(chunk) / 2
		left := append([]T{}, chunk[:mid]...)
		right := append([]T{}, chunk[mid:]...)
		s.chunks = replaceAt(s.chunks, idx, idx+1, [][]T{left, right})
	}
}

// ChunkCount reports the number of chunks backing the sequence. Exposed
// for tests asserting amortized rebalancing behavior, not part of the
// sequence's logical contract.
func (s *Sequence[T]) ChunkCount() int {
	return len(s.chunks)
}
