// Package reform implements the Reformulations bundle of spec §2: the
// tokenizer function type, codec, line-form, and grapheme segmenter a
// syntax type installs, and the composition of a Resource line into a
// styled Phrase from the tokenizer's field output.
//
// Tokenizers, per spec §1, are treated as pure `Line -> [(field_type,
// text)]` functions external to this module; reform only specifies the
// function type they must satisfy and how their output is turned into
// a Phrase. Grounded on original_source/syntax/fields.py's `Field`
// composition pass and internal/renderer/highlight's tokenizer
// interface for the Go function-type shape.
package reform

import (
	"github.com/keystorm/keystorm/internal/coreerr"
	"github.com/keystorm/keystorm/internal/device/core"
	"github.com/keystorm/keystorm/internal/element"
	"github.com/keystorm/keystorm/internal/fields"
	"github.com/keystorm/keystorm/internal/phrase"
)

// Field is one (field-class, text) pair a Tokenizer emits for a line,
// the Go shape of spec §1's `Line -> [(field_type, text)]`.
type Field struct {
	Class fields.Class
	Text  string
}

// Tokenizer produces the field sequence for one line's content. A
// tokenizer failure (spec §7's tokenizer-failure) is reported by
// returning a non-nil error; Compose renders the line as a single
// ClassErrorCondition field in that case rather than propagating.
type Tokenizer func(content string) ([]Field, error)

// Reformulations binds everything a syntax type installs: the element
// codec (element.Codec), a Tokenizer, the grapheme segmenter's
// control/tab cell widths, and the theme used to resolve field classes
// to styles.
type Reformulations struct {
	Codec     element.Codec
	Tokenizer Tokenizer
	Theme     *fields.Theme
	CtlSize   int
	TabSize   int
}

// PlainTokenizer is the reformulations fallback used when no syntax
// type is registered: the whole line is one ClassDefault field.
func PlainTokenizer(content string) ([]Field, error) {
	return []Field{{Class: fields.ClassDefault, Text: content}}, nil
}

// Default returns a Reformulations for plain, untokenized text: the
// default codec, PlainTokenizer, the default theme, and conventional
// control/tab widths.
func Default() Reformulations {
	return Reformulations{
		Codec:     element.DefaultCodec(),
		Tokenizer: PlainTokenizer,
		Theme:     fields.DefaultTheme(),
		CtlSize:   2,
		TabSize:   8,
	}
}

// Compose builds a styled Phrase for one Line's content, running the
// Tokenizer and resolving each field's class to a style via Theme. A
// tokenizer failure degrades to a single error-condition field instead
// of returning an error to the caller, per spec §7.
func (r Reformulations) Compose(line element.Line) phrase.Phrase[core.Style] {
	tokenizer := r.Tokenizer
	if tokenizer == nil {
		tokenizer = PlainTokenizer
	}

	tfields, err := tokenizer(line.Content)
	if err != nil {
		_ = coreerr.TokenizerFailure("reform.Compose", 0, err)
		tfields = []Field{{Class: fields.ClassErrorCondition, Text: line.Content}}
	}

	theme := r.Theme
	if theme == nil {
		theme = fields.DefaultTheme()
	}

	styled := make([]phrase.Field[core.Style], len(tfields))
	for i, f := range tfields {
		styled[i] = phrase.Field[core.Style]{Text: f.Text, Style: theme.Resolve(f.Class)}
	}
	return phrase.FromFields(styled, r.CtlSize, r.TabSize)
}
