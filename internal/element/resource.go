package element

import (
	"strings"

	"github.com/keystorm/keystorm/internal/coreerr"
	"github.com/keystorm/keystorm/internal/delta"
	"github.com/keystorm/keystorm/internal/segment"
)

// Status distinguishes a Resource's lifecycle state.
type Status uint8

const (
	StatusOpen Status = iota
	StatusClosed
)

// Observer is attached to a Resource and receives a Track call for
// every record written by an edit method, in write order, before the
// edit method returns. Views implement this to drive their image's
// incremental update compiler (spec §4.4); plain cursor trackers
// implement it to keep a Position in sync without rendering anything.
type Observer = delta.Observer

// TrackedCursor couples a Position to the line it currently addresses,
// so Resource edit methods can keep it correct across both intra-line
// (codepoint) and whole-line edits, per spec §3's "cursor invariants
// per Position are maintained across all edits" guarantee.
type TrackedCursor struct {
	Element int
	Pos     *Position
}

// Reformulations bundles the codec a Resource uses to decode its
// origin's bytes. The tokenizer, line-form, and grapheme segmenter
// named in spec §2 are consumed by the phrase/reform packages when
// composing Phrases for display, not by the Resource itself — the
// Resource only needs enough of the bundle to load bytes into lines.
type Reformulations struct {
	Codec Codec
}

// DefaultReformulations returns a Reformulations using DefaultCodec.
func DefaultReformulations() Reformulations {
	return Reformulations{Codec: DefaultCodec()}
}

// Resource is the line store of spec §3: a segmented sequence of
// encoded lines, a delta log, and the set of observers that must see
// every edit's records before the edit method returns.
type Resource struct {
	OriginReference string
	Reform          Reformulations

	elements *segment.Sequence[string]
	store    *storeTarget
	Log      *delta.Log

	status Status

	observers map[int]Observer
	nextObsID int
	cursors   []*TrackedCursor
}

// NewResource creates an empty, open Resource.
func NewResource(origin string, reform Reformulations) *Resource {
	seq := segment.New[string]()
	return &Resource{
		OriginReference: origin,
		Reform:          reform,
		elements:        seq,
		store:           &storeTarget{seq: seq},
		Log:             delta.NewLog(),
		status:          StatusOpen,
		observers:       make(map[int]Observer),
	}
}

// Status reports whether the resource is open or closed.
func (r *Resource) Status() Status { return r.status }

// Attach registers observer, returning a handle Detach accepts.
func (r *Resource) Attach(observer Observer) int {
	id := r.nextObsID
	r.nextObsID++
	r.observers[id] = observer
	return id
}

// Detach removes a previously attached observer. Safe to call with an
// unknown id (no-op), matching "closing a Resource detaches all
// observers" being idempotent.
func (r *Resource) Detach(id int) {
	delete(r.observers, id)
}

// AttachCursor registers a Position to be kept consistent with edits
// to the given element.
func (r *Resource) AttachCursor(c *TrackedCursor) {
	r.cursors = append(r.cursors, c)
}

// Close detaches every observer and marks the resource closed. Edit
// methods called after Close are silent no-ops, per spec §5's
// shared-resource policy.
func (r *Resource) Close() {
	r.status = StatusClosed
	r.observers = make(map[int]Observer)
	r.cursors = nil
}

func (r *Resource) trackAndCommit() {
	for _, obs := range r.observers {
		r.Log.Track(obs)
	}
	r.Log.Commit()
}

// LnCount returns the number of lines currently stored.
func (r *Resource) LnCount() int { return r.elements.Len() }

// Sole returns the Line at element, decoded.
func (r *Resource) Sole(element int) (Line, error) {
	encoded := r.elements.Get(element)
	return Decode(encoded)
}

// LnInitialize ensures the resource has exactly one, empty line when
// it currently has none. A no-op if lines already exist. The new line
// is followed by a Checkpoint, so it forms an undo group of its own and
// undoing later edits leaves it in place.
func (r *Resource) LnInitialize() error {
	if r.status == StatusClosed {
		return nil
	}
	if r.elements.Len() > 0 {
		return nil
	}
	encoded, err := Encode(Line{})
	if err != nil {
		return err
	}
	r.Log.Write(delta.Lines{Element: 0, Insertion: []string{encoded}})
	r.Log.Apply(r.store)
	r.trackAndCommit()
	r.Log.Checkpoint(0)
	return nil
}

// InsertCodepoints splices text into element at the given content
// (post-header) codepoint position.
func (r *Resource) InsertCodepoints(element, position int, text string) error {
	if r.status == StatusClosed {
		return nil
	}
	if element < 0 || element >= r.elements.Len() {
		if err := r.LnInitialize(); err != nil {
			return err
		}
		if element != 0 {
			return coreerr.EditRangeViolation("InsertCodepoints", element, r.elements.Len())
		}
	}

	rec := delta.Update{Element: element, Position: ContentOffset(position), Insertion: text, Deletion: ""}
	r.Log.Write(rec)
	r.Log.Apply(r.store)
	r.shiftCodepointCursors(element, ContentOffset(position), len([]rune(text)))
	r.trackAndCommit()
	return nil
}

// DeleteCodepoints removes [position, position+count) content
// codepoints from element.
func (r *Resource) DeleteCodepoints(element, position, count int) error {
	if r.status == StatusClosed {
		return nil
	}
	if element < 0 || element >= r.elements.Len() {
		return coreerr.EditRangeViolation("DeleteCodepoints", element, r.elements.Len())
	}

	line, err := r.Sole(element)
	if err != nil {
		return coreerr.DecodeFailure("DeleteCodepoints", err)
	}
	contentRunes := []rune(line.Content)
	if position < 0 || position+count > len(contentRunes) {
		return coreerr.EditRangeViolation("DeleteCodepoints", position+count, len(contentRunes))
	}

	deleted := string(contentRunes[position : position+count])
	rec := delta.Update{Element: element, Position: ContentOffset(position), Insertion: "", Deletion: deleted}
	r.Log.Write(rec)
	r.Log.Apply(r.store)
	r.shiftCodepointCursors(element, ContentOffset(position), -count)
	r.trackAndCommit()
	return nil
}

// Collapse folds pending records written since the last Commit into
// the previous committed record (used by a single-character typing
// path to avoid one undo-group per keystroke).
func (r *Resource) Collapse() {
	r.Log.Collapse()
}

// Split divides element at content position into two lines.
func (r *Resource) Split(element, position int) error {
	if r.status == StatusClosed {
		return nil
	}
	line, err := r.Sole(element)
	if err != nil {
		return err
	}
	contentRunes := []rune(line.Content)
	if position < 0 || position > len(contentRunes) {
		return coreerr.EditRangeViolation("Split", position, len(contentRunes))
	}

	first := Line{Level: line.Level, Content: string(contentRunes[:position])}
	second := Line{Level: line.Level, Content: string(contentRunes[position:])}
	firstEnc, err := Encode(first)
	if err != nil {
		return err
	}
	secondEnc, err := Encode(second)
	if err != nil {
		return err
	}

	rec := delta.Lines{Element: element, Insertion: []string{firstEnc, secondEnc}, Deletion: []string{r.elements.Get(element)}}
	r.Log.Write(rec)
	r.Log.Apply(r.store)
	r.shiftLineCursors(element+1, 1)
	r.trackAndCommit()
	return nil
}

// Join merges element and element+1 into a single line.
func (r *Resource) Join(element int) error {
	if r.status == StatusClosed {
		return nil
	}
	if element < 0 || element+1 >= r.elements.Len() {
		return coreerr.EditRangeViolation("Join", element+1, r.elements.Len())
	}
	first, err := r.Sole(element)
	if err != nil {
		return err
	}
	second, err := r.Sole(element + 1)
	if err != nil {
		return err
	}

	merged := Line{Level: first.Level, Content: first.Content + second.Content}
	mergedEnc, err := Encode(merged)
	if err != nil {
		return err
	}

	rec := delta.Lines{
		Element:   element,
		Insertion: []string{mergedEnc},
		Deletion:  []string{r.elements.Get(element), r.elements.Get(element + 1)},
	}
	r.Log.Write(rec)
	r.Log.Apply(r.store)
	r.shiftLineCursors(element+1, -1)
	r.trackAndCommit()
	return nil
}

// InsertLines inserts whole lines (as Line values) at element.
func (r *Resource) InsertLines(element int, lines []Line) error {
	if r.status == StatusClosed {
		return nil
	}
	encoded := make([]string, len(lines))
	for i, l := range lines {
		enc, err := Encode(l)
		if err != nil {
			return err
		}
		encoded[i] = enc
	}
	rec := delta.Lines{Element: element, Insertion: encoded}
	r.Log.Write(rec)
	r.Log.Apply(r.store)
	r.shiftLineCursors(element, len(lines))
	r.trackAndCommit()
	return nil
}

// DeleteLines removes count whole lines starting at element.
func (r *Resource) DeleteLines(element, count int) error {
	if r.status == StatusClosed {
		return nil
	}
	if element < 0 || element+count > r.elements.Len() {
		return coreerr.EditRangeViolation("DeleteLines", element+count, r.elements.Len())
	}
	deleted := r.elements.Slice(element, element+count)
	rec := delta.Lines{Element: element, Deletion: deleted}
	r.Log.Write(rec)
	r.Log.Apply(r.store)
	r.shiftLineCursors(element, -count)
	r.trackAndCommit()
	return nil
}

// Checkpoint writes a checkpoint boundary into the log.
func (r *Resource) Checkpoint(when int64) {
	r.Log.Checkpoint(when)
}

// Undo retracts up to n checkpoint groups, applying the inverses to
// the element store, and reports the change to observers.
func (r *Resource) Undo(n int) {
	if r.status == StatusClosed {
		return
	}
	inverses := r.Log.Undo(n)
	for _, rec := range inverses {
		rec.Apply(r.store)
	}
	for _, obs := range r.observers {
		for _, rec := range inverses {
			rec.Track(obs)
		}
	}
}

// Redo replays up to n checkpoint groups from the future stack.
func (r *Resource) Redo(n int) {
	if r.status == StatusClosed {
		return
	}
	records := r.Log.Redo(n)
	for _, rec := range records {
		rec.Apply(r.store)
	}
	for _, obs := range r.observers {
		for _, rec := range records {
			rec.Track(obs)
		}
	}
}

func (r *Resource) shiftCodepointCursors(element, headerPosition, quantity int) {
	for _, c := range r.cursors {
		if c.Element == element {
			c.Pos.Changed(headerPosition, quantity)
		}
	}
}

func (r *Resource) shiftLineCursors(fromElement, quantity int) {
	for _, c := range r.cursors {
		if quantity > 0 {
			if c.Element >= fromElement {
				c.Element += quantity
			}
		} else if c.Element >= fromElement {
			c.Element += quantity
			if c.Element < fromElement+quantity {
				c.Element = fromElement + quantity
			}
		}
	}
}

// LinesMatching returns the element offsets of every line whose
// content contains substr, in ascending order. Grounded on
// original_source/elements/query.py's selection-by-content helpers,
// used by the prompt refraction's `<` line-selection redirection
// (spec §6) to feed a command's stdin from matching lines.
func (r *Resource) LinesMatching(substr string) []int {
	var out []int
	n := r.elements.Len()
	for i := 0; i < n; i++ {
		line, err := r.Sole(i)
		if err != nil {
			continue
		}
		if strings.Contains(line.Content, substr) {
			out = append(out, i)
		}
	}
	return out
}

// Find locates the first occurrence of substr at or after (fromElement,
// fromPosition), scanning forward line by line. It reports the
// matching element and content-relative codepoint position, or
// found=false if no line from fromElement onward contains substr.
func (r *Resource) Find(substr string, fromElement, fromPosition int) (elementOffset, position int, found bool) {
	n := r.elements.Len()
	for i := fromElement; i < n; i++ {
		line, err := r.Sole(i)
		if err != nil {
			continue
		}
		runes := []rune(line.Content)
		start := 0
		if i == fromElement {
			start = fromPosition
			if start < 0 {
				start = 0
			}
			if start > len(runes) {
				continue
			}
		}
		idx := strings.Index(string(runes[start:]), substr)
		if idx < 0 {
			continue
		}
		position = start + len([]rune(string(runes[start:])[:idx]))
		return i, position, true
	}
	return 0, 0, false
}
