// Package key defines the keyboard event vocabulary a Device hands to
// the session's dispatch loop.
//
//   - Key: identifies a keyboard key (special keys or a rune)
//   - Modifier: the set of modifier keys held during an event
//   - Event: a single key press with modifiers and timestamp
//
// Event.Token renders an event as a short display string such as
// "[s][⇧⌃]", used by the status line and logs; it does not round-trip
// back into an Event, so it is one-directional.
package key
