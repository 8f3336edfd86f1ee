// Package phrase segments line content into display-ready words, the
// Go counterpart of original_source/cells/text.py's grapheme and cell
// accounting: codepoints are grouped into Character Units (graphemes)
// and those units into Words sharing one cell rate, so rendering and
// cursor arithmetic can work in codepoint, character-unit, or cell
// coordinates interchangeably (spec §4.3).
//
// Where the original hand-rolls ZWJ/variation-selector/regional-
// indicator detection, this package defers grapheme boundary detection
// to github.com/rivo/uniseg, which implements the full Unicode
// annex #29 algorithm rather than the subset of exceptions the
// original enumerates; the word-grouping pass above it is ported
// directly.
package phrase

import "github.com/rivo/uniseg"

// segment pairs a cell count with the text it was measured from.
// A negative Cells marks Text as a Character Unit (a single grapheme
// cluster spanning more than one codepoint, or a control character)
// rather than a run of single-width, single-codepoint characters —
// the same convention original_source/cells/text.py's words() uses.
type segment struct {
	cells int
	text  string
}

// CellWidth measures the display width of a single grapheme cluster,
// applying ctlsize for low-ASCII control characters and tabsize for
// the tab character in place of uniseg's width (which does not assign
// either a meaningful width).
func CellWidth(cluster string, ctlsize, tabsize int) int {
	if cluster == "\t" {
		return tabsize
	}
	r := []rune(cluster)
	if len(r) == 1 && r[0] < 0x20 {
		return ctlsize
	}
	return uniseg.StringWidth(cluster)
}

// Graphemes iterates the grapheme clusters of s, each paired with its
// measured cell width. It is a range-over-func iterator so callers can
// stop early without consuming the whole string.
func Graphemes(s string, ctlsize, tabsize int) func(func(cells int, cluster string) bool) {
	return func(yield func(int, string) bool) {
		state := -1
		remaining := s
		for len(remaining) > 0 {
			var cluster string
			cluster, remaining, _, state = uniseg.FirstGraphemeClusterInString(remaining, state)
			if !yield(CellWidth(cluster, ctlsize, tabsize), cluster) {
				return
			}
		}
	}
}

// groupWords groups the grapheme clusters of text into the segments
// used to build Words: a run of contiguous single-codepoint clusters
// sharing one cell width collapses into one positive-cell segment;
// any cluster that is itself multi-codepoint, or that is a control
// character, becomes its own negative-cell segment (a Character
// Unit), exactly mirroring original_source/cells/text.py's words().
func groupWords(text string, ctlsize, tabsize int) []segment {
	var out []segment
	current := 0
	var chars []rune

	flush := func() {
		if len(chars) > 0 {
			out = append(out, segment{cells: current * len(chars), text: string(chars)})
			chars = chars[:0]
		}
	}

	for cells, cluster := range Graphemes(text, ctlsize, tabsize) {
		runes := []rune(cluster)
		isUnit := len(runes) > 1 || (len(runes) == 1 && runes[0] < 0x20)

		if cells != current || isUnit {
			flush()
			if isUnit {
				out = append(out, segment{cells: -cells, text: cluster})
				current = 0
			} else {
				chars = append(chars, runes[0])
				current = cells
			}
			continue
		}

		chars = append(chars, runes[0])
	}
	flush()

	return out
}
