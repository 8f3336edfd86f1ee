// Package mode implements the control/insert modal split a Session's
// dispatch loop routes key events through:
//   - Normal mode: navigation and single-key editing commands
//   - Insert mode: text input
//
// The Manager coordinates mode transitions: a mode's Exit() runs,
// then the new mode's Enter().
// HandleUnmapped is the only entry point modes expose to the dispatch
// loop; it reports whether the key was consumed, text to insert
// verbatim, and an optional Action naming a follow-up operation.
package mode
