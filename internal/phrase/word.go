package phrase

// Kind distinguishes the three Word varieties spec §4.3 and
// original_source/cells/text.py's Words/Unit/Redirect hierarchy need:
// a plain run of equal-width characters, a single Character Unit
// (grapheme cluster or control character), or a Redirect (a Unit
// whose displayed text has been substituted for its source text,
// used for indentation markers and control-picture glyphs).
type Kind uint8

const (
	KindWord Kind = iota
	KindUnit
	KindRedirect
)

// Word is one segment of a Phrase: a run of text measured at Cells
// wide, carrying a style value of whatever type the caller's field
// taxonomy uses (core.Style from internal/device/core where reform and
// view build phrases, kept generic here). A KindRedirect word's
// Text is what gets rendered; Source preserves the original content it
// stands in for, so codepoint/unit accounting still reflects the real
// underlying data.
type Word[S any] struct {
	Kind   Kind
	Cells  int
	Text   string
	Source string
	Style  S
}

// frameWord builds a Word from a groupWords segment, following
// Phrase.frame_word: a negative cell count marks a Character Unit.
func frameWord[S any](seg segment, style S) Word[S] {
	if seg.cells < 0 {
		return Word[S]{Kind: KindUnit, Cells: -seg.cells, Text: seg.text, Style: style}
	}
	return Word[S]{Kind: KindWord, Cells: seg.cells, Text: seg.text, Style: style}
}

// NewRedirect builds a Redirect word that displays display in place of
// source, with display's cell cost computed the same way a Unit's
// would be (so layout accounts for it correctly even though Source,
// not Text, is the logical content).
func NewRedirect[S any](source, display string, style S) Word[S] {
	cells := 0
	for c := range Graphemes(display, 0, 8) {
		cells += abs(c)
	}
	return Word[S]{Kind: KindRedirect, Cells: cells, Text: display, Source: source, Style: style}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// unit returns the codepoint length of one Character Unit in this
// word: 1 for an ordinary Word (one codepoint per unit), or the full
// codepoint length of Text for a Unit/Redirect (the whole cluster is
// one unit).
func (w Word[S]) unit() int {
	if w.Kind == KindWord {
		return 1
	}
	return len([]rune(w.logicalText()))
}

// logicalText is the text unit/codepoint accounting is performed
// against: Source for a Redirect (the data it stands in for), Text
// otherwise.
func (w Word[S]) logicalText() string {
	if w.Kind == KindRedirect {
		return w.Source
	}
	return w.Text
}

// CellRate is the number of cells required to display one Character
// Unit of this word's text.
func (w Word[S]) CellRate() int {
	uc := w.UnitCount()
	if uc == 0 {
		return 0
	}
	return w.Cells / uc
}

// CodeCount is the number of codepoints in the word's logical text.
func (w Word[S]) CodeCount() int { return len([]rune(w.logicalText())) }

// UnitCount is the number of Character Units in the word's logical
// text.
func (w Word[S]) UnitCount() int {
	u := w.unit()
	if u == 0 {
		return 0
	}
	return w.CodeCount() / u
}

// Split divides the word at codepoint offset whence, measured against
// its logical text. An ordinary Word splits its text directly; a Unit
// or Redirect is indivisible and returns an empty word on whichever
// side whence falls outside of, matching original_source's
// Unit.split.
func (w Word[S]) Split(whence int) (Word[S], Word[S]) {
	if w.Kind != KindWord {
		empty := Word[S]{Kind: w.Kind, Style: w.Style}
		if whence < w.CodeCount() {
			return empty, w
		}
		return w, empty
	}

	runes := []rune(w.Text)
	if whence < 0 {
		whence = 0
	}
	if whence > len(runes) {
		whence = len(runes)
	}
	rate := w.CellRate()
	former := string(runes[:whence])
	latter := string(runes[whence:])
	return Word[S]{Kind: KindWord, Cells: len([]rune(former)) * rate, Text: former, Style: w.Style},
		Word[S]{Kind: KindWord, Cells: len([]rune(latter)) * rate, Text: latter, Style: w.Style}
}
