package phrase

// Position addresses a codepoint within a Phrase as a (word index,
// codepoint-within-word) pair, the Go form of original_source's
// (wordi, chari) tuples.
type Position struct {
	Word int
	Code int
}

// Phrase is an ordered sequence of Words providing codepoint,
// character-unit, and cell coordinate translation across the whole
// line, per spec §4.3.
type Phrase[S any] []Word[S]

// FromText builds a Phrase from plain line content, grouping
// codepoints into Words and Units via groupWords and assigning style
// to every word produced (the uniform-style case; a syntax-aware
// caller composes a Phrase from multiple field runs instead, via
// FromFields).
func FromText[S any](text string, ctlsize, tabsize int, style S) Phrase[S] {
	segs := groupWords(text, ctlsize, tabsize)
	out := make(Phrase[S], 0, len(segs))
	for _, seg := range segs {
		out = append(out, frameWord(seg, style))
	}
	return out
}

// Field is one styled run of source text, the input FromFields
// consumes to build a Phrase spanning multiple styles (e.g. a
// tokenizer's output).
type Field[S any] struct {
	Text  string
	Style S
}

// FromFields builds a Phrase from a sequence of styled field runs,
// segmenting each field's text independently so Character Unit
// boundaries never cross a style change.
func FromFields[S any](fields []Field[S], ctlsize, tabsize int) Phrase[S] {
	var out Phrase[S]
	for _, f := range fields {
		out = append(out, FromText(f.Text, ctlsize, tabsize, f.Style)...)
	}
	return out
}

// Text concatenates the logical text of every word in the phrase.
func (p Phrase[S]) Text() string {
	var out []rune
	for _, w := range p {
		out = append(out, []rune(w.logicalText())...)
	}
	return string(out)
}

// CellCount is the total display width of the phrase.
func (p Phrase[S]) CellCount() int {
	total := 0
	for _, w := range p {
		total += w.Cells
	}
	return total
}

// UnitCount is the total number of Character Units in the phrase.
func (p Phrase[S]) UnitCount() int {
	total := 0
	for _, w := range p {
		total += w.UnitCount()
	}
	return total
}

// CodeCount is the total number of codepoints in the phrase.
func (p Phrase[S]) CodeCount() int {
	total := 0
	for _, w := range p {
		total += w.CodeCount()
	}
	return total
}

// Combine merges adjacent words sharing an identical style into one
// word, per original_source's Phrase.combine. Word boundaries that
// exist only to separate otherwise-identical styling collapse away;
// a Unit or Redirect is never merged into a neighboring plain Word,
// since doing so would lose its indivisibility.
func Combine[S comparable](p Phrase[S]) Phrase[S] {
	if len(p) == 0 {
		return p
	}
	out := Phrase[S]{p[0]}
	for _, w := range p[1:] {
		last := &out[len(out)-1]
		if last.Kind == KindWord && w.Kind == KindWord && last.Style == w.Style {
			last.Cells += w.Cells
			last.Text += w.Text
			continue
		}
		out = append(out, w)
	}
	return out
}

// Split divides the phrase at position whence, returning the phrase
// content before and after the split point. whence.Word must be a
// valid index (or len(p) for an empty trailing phrase).
func (p Phrase[S]) Split(whence Position) (Phrase[S], Phrase[S]) {
	if len(p) == 0 {
		return Phrase[S]{}, Phrase[S]{}
	}
	w := p[whence.Word]
	left, right := w.Split(whence.Code)

	before := append(Phrase[S]{}, p[:whence.Word]...)
	before = append(before, left)
	after := Phrase[S]{right}
	after = append(after, p[whence.Word+1:]...)
	return before, after
}

// Subphrase extracts the words addressed by [start, stop), a cell-
// offset range already translated into word/codepoint positions via
// Seek (as original_source's Phrase.select expects).
func (p Phrase[S]) Subphrase(start, stop Position) Phrase[S] {
	if len(p) == 0 {
		return Phrase[S]{}
	}
	if start.Word == stop.Word {
		w := p[start.Word]
		runes := []rune(w.Text)
		if start.Code > len(runes) {
			start.Code = len(runes)
		}
		if stop.Code > len(runes) {
			stop.Code = len(runes)
		}
		text := string(runes[start.Code:stop.Code])
		return Phrase[S]{Word[S]{Kind: w.Kind, Cells: len([]rune(text)) * w.CellRate(), Text: text, Style: w.Style}}
	}

	var out Phrase[S]
	first := p[start.Word]
	firstRunes := []rune(first.Text)
	if head := string(firstRunes[start.Code:]); head != "" {
		out = append(out, Word[S]{Kind: first.Kind, Cells: len([]rune(head)) * first.CellRate(), Text: head, Style: first.Style})
	}
	out = append(out, p[start.Word+1:stop.Word]...)
	last := p[stop.Word]
	lastRunes := []rune(last.Text)
	if tail := string(lastRunes[:stop.Code]); tail != "" {
		out = append(out, Word[S]{Kind: last.Kind, Cells: len([]rune(tail)) * last.CellRate(), Text: tail, Style: last.Style})
	}
	return out
}

// Tell returns the absolute codepoint offset of position, counting
// every word's logical text preceding it.
func (p Phrase[S]) Tell(position Position) int {
	if len(p) == 0 {
		return 0
	}
	offset := position.Code
	for i := 0; i < position.Word; i++ {
		offset += p[i].CodeCount()
	}
	return offset
}

// Seek finds the word/codepoint position reached by moving offset
// codepoints from whence (negative offsets move backward). It returns
// the position reached and any remainder offset that could not be
// consumed because it ran past the beginning or end of the phrase,
// the codepoint-granularity instance of original_source's generic
// Phrase.seek. The character-unit and cell forms are SeekUnits and
// SeekCells in coords.go.
func (p Phrase[S]) Seek(whence Position, offset int) (Position, int) {
	if offset == 0 || len(p) == 0 {
		return whence, offset
	}

	if offset < 0 {
		remaining := -offset + (p[whence.Word].CodeCount() - whence.Code)
		for i := whence.Word; i >= 0; i-- {
			cc := p[i].CodeCount()
			if remaining <= cc {
				return Position{Word: i, Code: cc - remaining}, 0
			}
			remaining -= cc
		}
		return Position{Word: 0, Code: 0}, -remaining
	}

	remaining := offset + whence.Code
	for i := whence.Word; i < len(p); i++ {
		cc := p[i].CodeCount()
		if remaining <= cc {
			return Position{Word: i, Code: remaining}, 0
		}
		remaining -= cc
	}
	last := len(p) - 1
	return Position{Word: last, Code: p[last].CodeCount()}, remaining
}
