package fields

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/keystorm/keystorm/internal/device/core"
)

// Theme maps field classes to display styles, falling back to
// ClassDefault for any name it has no entry for, per spec §6.
type Theme struct {
	Name    string
	Styles  map[Class]core.Style
	Default core.Style
}

// NewTheme constructs an empty theme; callers populate Styles and
// Default, or start from DefaultTheme.
func NewTheme(name string) *Theme {
	return &Theme{Name: name, Styles: make(map[Class]core.Style)}
}

// Resolve returns the style registered for class, falling back
// through field-annotation-* to the base annotation entry, then to
// ClassDefault, matching internal/renderer/highlight.Theme's
// StyleForScope fallback chain generalized from dot-segmented scopes
// to the hyphen-segmented field-class taxonomy.
func (t *Theme) Resolve(class Class) core.Style {
	if style, ok := t.Styles[class]; ok {
		return style
	}

	if annotationPrefixed(class) {
		if style, ok := t.Styles[ClassFieldAnnotation]; ok {
			return style
		}
	}

	for c := string(class); strings.Contains(c, "-"); {
		c = c[:strings.LastIndex(c, "-")]
		if style, ok := t.Styles[Class(c)]; ok {
			return style
		}
	}

	return t.Default
}

// DefaultTheme returns a minimal dark theme covering every class named
// in spec §6, following internal/renderer/highlight.DefaultTheme's
// palette conventions.
func DefaultTheme() *Theme {
	t := NewTheme("keystorm-default")
	fg := core.ColorFromRGB(212, 212, 212)
	t.Default = core.Style{Foreground: fg, Background: core.ColorDefault}

	set := func(c Class, r, g, b uint8) {
		t.Styles[c] = core.Style{Foreground: core.ColorFromRGB(r, g, b), Background: core.ColorDefault}
	}

	set(ClassIdentifier, 212, 212, 212)
	set(ClassKeyword, 197, 134, 192)
	set(ClassCoreword, 86, 156, 214)
	set(ClassMetaword, 78, 201, 176)
	set(ClassOperation, 212, 212, 212)
	set(ClassRouter, 212, 212, 212)
	set(ClassTerminator, 212, 212, 212)
	set(ClassStartEnclosure, 212, 212, 212)
	set(ClassStopEnclosure, 212, 212, 212)
	set(ClassSpace, 90, 90, 90)
	set(ClassComment, 106, 153, 85)
	set(ClassLiteralString, 206, 145, 120)
	set(ClassIndentation, 60, 60, 60)
	set(ClassIndentationOnly, 60, 60, 60)
	set(ClassTrailingWhitespace, 244, 71, 71)
	set(ClassLineTermination, 60, 60, 60)
	set(ClassFieldAnnotation, 120, 120, 120)
	set(ClassErrorCondition, 244, 71, 71)
	set(ClassWarning, 220, 180, 60)
	set(ClassPathSeparator, 150, 150, 150)
	set(ClassPathDirectory, 86, 156, 214)
	set(ClassPathLink, 78, 201, 176)
	set(ClassExecutable, 137, 209, 133)
	set(ClassDotFile, 120, 120, 120)
	set(ClassFileNotFound, 244, 71, 71)
	set(ClassRepresentation, 220, 180, 60)
	set(ClassObstruction, 150, 150, 150)

	return t
}

// Blend linearly interpolates between a and b in perceptual (Lab)
// space via go-colorful, used to derive an overlay color (e.g. a
// diagnostic tint or a dimmed annotation) from a theme's registered
// colors rather than hand-mixing RGB channels.
func Blend(a, b core.Color, t float64) core.Color {
	ca, _ := colorful.MakeColor(toStdColor(a))
	cb, _ := colorful.MakeColor(toStdColor(b))
	blended := ca.BlendLab(cb, t)
	r, g, bl := blended.RGB255()
	return core.ColorFromRGB(r, g, bl)
}
