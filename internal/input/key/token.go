package key

import "strings"

// modifierGlyphs gives each modifier's display glyph, ordered the way
// Token renders them: Shift, Control, Alt, Meta.
var modifierGlyphs = []struct {
	mod   Modifier
	glyph string
}{
	{ModShift, "⇧"}, // ⇧
	{ModCtrl, "⌃"},  // ⌃
	{ModAlt, "⌥"},   // ⌥
	{ModMeta, "⌘"},  // ⌘
}

// keyGlyphs gives the display glyph for keys with a conventional
// single-character symbol; keys absent from this map render their
// String() name instead.
var keyGlyphs = map[Key]string{
	KeyEscape:    "⎋",
	KeyEnter:     "⏎",
	KeyTab:       "⇥",
	KeyBackspace: "⌫",
	KeyDelete:    "⌦",
	KeyUp:        "↑",
	KeyDown:      "↓",
	KeyLeft:      "←",
	KeyRight:     "→",
	KeySpace:     "␣",
}

// Token renders the event as a two-bracket token, the key followed by
// its active modifiers: "[A][⇧⌃]" for Shift-Control-A, "[Enter][]"
// for an unmodified Enter. Used wherever a key must be logged or
// displayed rather than interpreted, per spec §6's device key contract.
func (e Event) Token() string {
	var keyPart string
	switch {
	case e.IsRune():
		keyPart = string(e.Rune)
	default:
		if g, ok := keyGlyphs[e.Key]; ok {
			keyPart = g
		} else {
			keyPart = e.Key.String()
		}
	}

	var mods strings.Builder
	for _, m := range modifierGlyphs {
		if e.Modifiers.Has(m.mod) {
			mods.WriteString(m.glyph)
		}
	}

	return "[" + keyPart + "][" + mods.String() + "]"
}
