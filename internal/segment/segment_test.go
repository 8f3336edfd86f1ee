package segment

import (
	"math/rand"
	"testing"
)

func TestSequenceInsertDeleteEquivalence(t *testing.T) {
	type op struct {
		insert     bool
		offset     int
		count      int
		deleteStop int
	}

	ops := []op{
		{insert: true, offset: 0, count: 200},
		{insert: true, offset: 50, count: 10},
		{insert: false, offset: 5, deleteStop: 15},
		{insert: true, offset: 0, count: 1},
		{insert: false, offset: 0, deleteStop: 1},
	}

	seq := New[int]()
	var reference []int

	rng := rand.New(rand.NewSource(1))
	for _, o := range ops {
		if o.insert {
			items := make([]int, o.count)
			for i := range items {
				items[i] = rng.Intn(1000)
			}
			seq.Insert(o.offset, items)
			ref2 := append([]int{}, reference[:o.offset]...)
			ref2 = append(ref2, items...)
			ref2 = append(ref2, reference[o.offset:]...)
			reference = ref2
		} else {
			seq.Delete(o.offset, o.deleteStop)
			reference = append(reference[:o.offset], reference[o.deleteStop:]...)
		}

		if seq.Len() != len(reference) {
			t.Fatalf("length mismatch: got %d want %d", seq.Len(), len(reference))
		}
		got := seq.Slice(0, seq.Len())
		for i := range reference {
			if got[i] != reference[i] {
				t.Fatalf("mismatch at %d: got %d want %d", i, got[i], reference[i])
			}
		}
	}
}

func TestSequenceSelectIteration(t *testing.T) {
	seq := FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	var out []int
	for v := range seq.Select(2, 7) {
		out = append(out, v)
	}
	want := []int{2, 3, 4, 5, 6}
	if len(out) != len(want) {
		t.Fatalf("got %v want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("got %v want %v", out, want)
		}
	}
}

func TestSequenceSelectEarlyStop(t *testing.T) {
	seq := FromSlice([]int{0, 1, 2, 3, 4})
	var out []int
	for v := range seq.Select(0, 5) {
		out = append(out, v)
		if len(out) == 2 {
			break
		}
	}
	if len(out) != 2 {
		t.Fatalf("expected early stop to yield 2 items, got %d", len(out))
	}
}

func TestSequenceInsertOnBoundaryPrefersEmptyPrecedingChunk(t *testing.T) {
	seq := New[int]()
	seq.Insert(0, make([]int, TargetChunkSize))
	seq.Insert(seq.Len(), []int{1})
	seq.Delete(seq.Len()-1, seq.Len())

	before := seq.ChunkCount()
	seq.Insert(seq.Len(), []int{42})
	if seq.ChunkCount() > before {
		t.Fatalf("expected insert at boundary with empty neighbor not to grow chunk count: before=%d after=%d", before, seq.ChunkCount())
	}
}

func TestSequencePartitionRebalances(t *testing.T) {
	seq := New[int]()
	for i := 0; i < 500; i++ {
		seq.Insert(seq.Len(), []int{i})
	}
	seq.Partition(nil)
	if seq.Len() != 500 {
		t.Fatalf("partition changed length: got %d", seq.Len())
	}
	for i, c := range seq.chunks {
		if len(c) > TargetChunkSize && i != len(seq.chunks)-1 {
			t.Fatalf("chunk %d exceeds target size after partition: %d", i, len(c))
		}
	}
}

func TestReadOnlyIgnoresMutationSurface(t *testing.T) {
	backing := FromSlice([]string{"a", "b", "c"})
	ro := NewReadOnly(backing)

	if ro.Len() != 3 {
		t.Fatalf("expected length 3, got %d", ro.Len())
	}
	backing.Append("d")
	if ro.Len() != 4 {
		t.Fatalf("expected ReadOnly to reflect backing mutations made through the writer, got %d", ro.Len())
	}
}

func FuzzSequenceMatchesSliceSemantics(f *testing.F) {
	f.Add(uint8(3), uint8(1), uint8(0))
	f.Fuzz(func(t *testing.T, a, b, c uint8) {
		seq := New[byte]()
		var reference []byte

		insert := func(off int, v byte) {
			if off > len(reference) {
				off = len(reference)
			}
			seq.Insert(off, []byte{v})
			reference = append(reference[:off:off], append([]byte{v}, reference[off:]...)...)
		}

		insert(int(a)%32, a)
		insert(int(b)%32, b)
		insert(int(c)%32, c)

		if seq.Len() != len(reference) {
			t.Fatalf("length mismatch: got %d want %d", seq.Len(), len(reference))
		}
		got := seq.Slice(0, seq.Len())
		for i := range reference {
			if got[i] != reference[i] {
				t.Fatalf("mismatch at %d", i)
			}
		}
	})
}
