package device

import (
	"github.com/keystorm/keystorm/internal/device/backend"
	"github.com/keystorm/keystorm/internal/input/key"
)

var specialKeys = map[backend.Key]key.Key{
	backend.KeyEscape:    key.KeyEscape,
	backend.KeyEnter:     key.KeyEnter,
	backend.KeyTab:       key.KeyTab,
	backend.KeyBackspace: key.KeyBackspace,
	backend.KeyDelete:    key.KeyDelete,
	backend.KeyInsert:    key.KeyInsert,
	backend.KeyHome:      key.KeyHome,
	backend.KeyEnd:       key.KeyEnd,
	backend.KeyPageUp:    key.KeyPageUp,
	backend.KeyPageDown:  key.KeyPageDown,
	backend.KeyUp:        key.KeyUp,
	backend.KeyDown:      key.KeyDown,
	backend.KeyLeft:      key.KeyLeft,
	backend.KeyRight:     key.KeyRight,
	backend.KeyF1:        key.KeyF1,
	backend.KeyF2:        key.KeyF2,
	backend.KeyF3:        key.KeyF3,
	backend.KeyF4:        key.KeyF4,
	backend.KeyF5:        key.KeyF5,
	backend.KeyF6:        key.KeyF6,
	backend.KeyF7:        key.KeyF7,
	backend.KeyF8:        key.KeyF8,
	backend.KeyF9:        key.KeyF9,
	backend.KeyF10:       key.KeyF10,
	backend.KeyF11:       key.KeyF11,
	backend.KeyF12:       key.KeyF12,
}

// ctrlRunes maps the backend's dedicated Ctrl-letter keys (tcell
// reports these as distinct key codes rather than Rune+ModCtrl) to the
// rune they correspond to.
var ctrlRunes = map[backend.Key]rune{
	backend.KeyCtrlA: 'a', backend.KeyCtrlB: 'b', backend.KeyCtrlC: 'c',
	backend.KeyCtrlD: 'd', backend.KeyCtrlE: 'e', backend.KeyCtrlF: 'f',
	backend.KeyCtrlG: 'g', backend.KeyCtrlH: 'h', backend.KeyCtrlI: 'i',
	backend.KeyCtrlJ: 'j', backend.KeyCtrlK: 'k', backend.KeyCtrlL: 'l',
	backend.KeyCtrlM: 'm', backend.KeyCtrlN: 'n', backend.KeyCtrlO: 'o',
	backend.KeyCtrlP: 'p', backend.KeyCtrlQ: 'q', backend.KeyCtrlR: 'r',
	backend.KeyCtrlS: 's', backend.KeyCtrlT: 't', backend.KeyCtrlU: 'u',
	backend.KeyCtrlV: 'v', backend.KeyCtrlW: 'w', backend.KeyCtrlX: 'x',
	backend.KeyCtrlY: 'y', backend.KeyCtrlZ: 'z',
}

// convertEvent translates a backend key event into the input/key
// package's Event type. ModMask and Modifier share the same 1<<iota
// bit layout (None, Shift, Ctrl, Alt, Meta) so the mask converts
// directly.
func convertEvent(ev backend.Event) key.Event {
	mods := key.Modifier(ev.Mod)

	if ev.Type != backend.EventKey {
		return key.Event{Key: key.KeyNone, Modifiers: mods}
	}

	if r, ok := ctrlRunes[ev.Key]; ok {
		return key.NewRuneEvent(r, mods|key.ModCtrl)
	}
	if ev.Key == backend.KeyCtrlSpace {
		return key.NewRuneEvent(' ', mods|key.ModCtrl)
	}
	if ev.Key == backend.KeyRune {
		return key.NewRuneEvent(ev.Rune, mods)
	}
	if k, ok := specialKeys[ev.Key]; ok {
		return key.NewSpecialEvent(k, mods)
	}
	return key.NewSpecialEvent(key.KeyNone, mods)
}
