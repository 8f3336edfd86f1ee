// Package element implements the line store of spec §3: the Position
// type, the canonical line encoding, and the Resource that binds a
// segmented sequence of encoded lines to a delta log and its
// observers.
//
// The line encoding and Position semantics are ported from
// original_source/elements/types.py (the `Position` and line-codec
// classes); the Go shape — explicit codepoint ([]rune) indexing instead
// of Python's native string indexing — follows the coordinate-handling
// conventions of internal/renderer/layout, adjusted because spec §6
// requires the header to occupy exactly 4 codepoints regardless of the
// rune width involved.
package element

import "fmt"

// HeaderOffset is the fixed number of codepoints occupied by a line's
// level+size header, per spec §6. Any codepoint position handed to a
// delta record for a line is offset by this constant from the line's
// content-relative position.
const HeaderOffset = 4

// MaxExtensionLength is the largest extension byte length the 3-digit,
// 7-bit-per-digit big-endian size field can represent (2^21 - 1).
const MaxExtensionLength = 1<<21 - 1

// Line is the structured view of one encoded element: an indentation
// level in abstract units, the line's text content, and an opaque
// extension blob carried alongside it (e.g. a saved fold state).
type Line struct {
	Level     uint8
	Content   string
	Extension string
}

// Encode renders l into its canonical single-string storage form:
// chr(level) + 3-codepoint big-endian length of extension + content +
// extension.
func Encode(l Line) (string, error) {
	extRunes := []rune(l.Extension)
	if len(extRunes) > MaxExtensionLength {
		return "", fmt.Errorf("element: extension length %d exceeds %d", len(extRunes), MaxExtensionLength)
	}

	out := make([]rune, 0, HeaderOffset+len([]rune(l.Content))+len(extRunes))
	out = append(out, rune(l.Level))
	out = append(out, sizeDigits(len(extRunes))...)
	out = append(out, []rune(l.Content)...)
	out = append(out, extRunes...)
	return string(out), nil
}

// Decode parses the canonical storage form back into a Line.
func Decode(encoded string) (Line, error) {
	runes := []rune(encoded)
	if len(runes) < HeaderOffset {
		return Line{}, fmt.Errorf("element: encoded line shorter than header (%d codepoints)", len(runes))
	}

	level := uint8(runes[0])
	extLen := sizeValue(runes[1:HeaderOffset])

	if extLen > len(runes)-HeaderOffset {
		return Line{}, fmt.Errorf("element: extension length %d exceeds available codepoints", extLen)
	}

	contentEnd := len(runes) - extLen
	return Line{
		Level:     level,
		Content:   string(runes[HeaderOffset:contentEnd]),
		Extension: string(runes[contentEnd:]),
	}, nil
}

// sizeDigits encodes n as three codepoints, each carrying 7 bits of a
// 21-bit big-endian value.
func sizeDigits(n int) []rune {
	return []rune{
		rune((n >> 14) & 0x7f),
		rune((n >> 7) & 0x7f),
		rune(n & 0x7f),
	}
}

// sizeValue decodes three 7-bit big-endian digits back into an int.
func sizeValue(digits []rune) int {
	return int(digits[0])<<14 | int(digits[1])<<7 | int(digits[2])
}

// ContentOffset translates a codepoint offset within l.Content to its
// absolute offset within the encoded storage form (adding the header).
func ContentOffset(contentOffset int) int {
	return contentOffset + HeaderOffset
}
