package location

import (
	"os"

	"github.com/keystorm/keystorm/internal/alignment"
	"github.com/keystorm/keystorm/internal/element"
	"github.com/keystorm/keystorm/internal/reform"
	"github.com/keystorm/keystorm/internal/view"
)

// Action distinguishes what an activation event (e.g. Enter) against a
// location Refraction should do with the composed path, mirroring
// location.py's open/save dispatch functions.
type Action uint8

const (
	// ActionOpen resolves the composed path and loads it as the
	// target pane's Resource.
	ActionOpen Action = iota
	// ActionSave resolves the composed path and writes the target
	// pane's current content to it.
	ActionSave
)

// Refraction is a division's location-header view: a two-line
// Resource (context line, subject line) rendered through the path
// structuring tokenizer, plus the pending Action an activation event
// should perform.
type Refraction struct {
	*view.Refraction
	Root   string
	Action Action
}

// New creates a location Refraction over a fresh two-line Resource
// seeded with (context, subject), per Determine's split of an
// existing path. base supplies the theme and cell-width policy; its
// Tokenizer is replaced with the path structuring tokenizer.
func New(area alignment.Area, root, context, subject string, base reform.Reformulations) (*Refraction, error) {
	res := element.NewResource("/dev/location", element.DefaultReformulations())
	if err := res.InsertLines(0, []element.Line{{Content: context}, {Content: subject}}); err != nil {
		return nil, err
	}
	rf := base
	rf.Tokenizer = Tokenizer(root)
	return &Refraction{
		Refraction: view.New(res, rf, area),
		Root:       root,
	}, nil
}

// Lines returns the refraction's two path-component lines as plain
// strings, for Compose.
func (l *Refraction) Lines() []string {
	n := l.Source.LnCount()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		line, err := l.Source.Sole(i)
		if err != nil {
			continue
		}
		out[i] = line.Content
	}
	return out
}

// Path composes the refraction's lines into the absolute path they
// describe.
func (l *Refraction) Path() string {
	return Compose(l.Lines(), "/dev/null")
}

// Target opens or creates the Resource a location Refraction's
// activation attaches to the focused pane. Activate calls it for both
// Actions; for ActionSave it first writes the content to the path.
type Target interface {
	Open(path string, rf reform.Reformulations) (*element.Resource, error)
}

// Activate resolves the refraction's composed path and performs its
// configured Action against target, matching location.py's open/save
// handlers: open loads (or creates) the path as a Resource; save
// writes content verbatim to it and then opens it the same way. Activate does not mutate the
// location Refraction itself; the caller is expected to clear its
// lines and re-focus the target pane afterward, as Session.dispatch
// does for every other action.
func (l *Refraction) Activate(target Target, rf reform.Reformulations, content []string) (*element.Resource, error) {
	path := l.Path()
	switch l.Action {
	case ActionSave:
		if err := writeLines(path, content); err != nil {
			return nil, err
		}
		return target.Open(path, rf)
	default:
		return target.Open(path, rf)
	}
}

func writeLines(path string, content []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, line := range content {
		if _, err := f.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}
