package segment

// Reader is the read-only interface shared by Sequence and ReadOnly,
// letting transcript-style consumers observe a sequence without caring
// whether writes to it are honored.
type Reader[T any] interface {
	Len() int
	Get(offset int) T
	Slice(start, stop int) []T
	Select(start, stop int) func(func(T) bool)
}

var (
	_ Reader[int] = (*Sequence[int])(nil)
	_ Reader[int] = (*ReadOnly[int])(nil)
)

// ReadOnly wraps a Sequence and exposes only its read methods.
// It backs the transcript view's append-only-from-the-log-side
// guarantee: the transcript only ever grows by the log replaying
// records into it via its own internal writer, never by a caller
// splicing the displayed sequence directly.
type ReadOnly[T any] struct {
	backing *Sequence[T]
}

// NewReadOnly wraps backing. A nil backing yields an always-empty view.
func NewReadOnly[T any](backing *Sequence[T]) *ReadOnly[T] {
	if backing == nil {
		backing = New[T]()
	}
	return &ReadOnly[T]{backing: backing}
}

func (r *ReadOnly[T]) Len() int                                     { return r.backing.Len() }
func (r *ReadOnly[T]) Get(offset int) T                             { return r.backing.Get(offset) }
func (r *ReadOnly[T]) Slice(start, stop int) []T                    { return r.backing.Slice(start, stop) }
func (r *ReadOnly[T]) Select(start, stop int) func(func(T) bool)    { return r.backing.Select(start, stop) }

// Set, Insert, Delete, Append, Extend, and Partition are intentionally
// absent: ReadOnly exposes Reader[T] only. Code that needs to mutate
// the transcript's backing sequence holds the underlying *Sequence[T]
// directly (the log's writer), never a ReadOnly handle.
