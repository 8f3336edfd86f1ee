package mode

import (
	"github.com/keystorm/keystorm/internal/input/key"
)

// Mode defines the interface for editor modes.
// Each mode determines how key events are interpreted and what cursor
// style is displayed.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal", "insert").
	Name() string

	// DisplayName returns a human-readable name for the status line.
	DisplayName() string

	// CursorStyle returns the cursor style for this mode.
	CursorStyle() CursorStyle

	// Enter is called when entering this mode.
	// The context provides information about the transition.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	// The context provides information about the transition.
	Exit(ctx *Context) error

	// HandleUnmapped handles key events that have no binding in this mode.
	// It never returns nil; a key the mode ignores yields a result with
	// Consumed false.
	HandleUnmapped(event key.Event, ctx *Context) *UnmappedResult
}

// UnmappedResult describes what to do with an unmapped key.
type UnmappedResult struct {
	// Action is the action to execute, if any.
	Action *Action

	// Consumed indicates whether the key was handled.
	Consumed bool

	// InsertText is text to insert (for insert mode).
	InsertText string
}

// Action names a dispatch operation a mode's key handling produced,
// with Session.dispatch as the sole consumer. Args carries the
// operation's parameters (a motion count, an insert position, a line
// number), keyed by name rather than a fixed struct per action since
// the vocabulary stays small and heterogeneous.
type Action struct {
	Name string
	Args map[string]any
}

// Context provides information during mode transitions and key handling.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string

	// Count is the numeric prefix, if any (e.g., 5 in "5j").
	Count int

	// Extra holds mode-specific context data.
	Extra map[string]any
}

// NewContext creates a new mode context.
func NewContext() *Context {
	return &Context{
		Extra: make(map[string]any),
	}
}

// WithCount returns a copy of the context with the given count.
func (c *Context) WithCount(count int) *Context {
	copy := *c
	copy.Count = count
	return &copy
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline

	// CursorHidden hides the cursor.
	CursorHidden
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	case CursorHidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// Standard mode names.
const (
	ModeNormal = "normal"
	ModeInsert = "insert"
)
