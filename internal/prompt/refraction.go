// Package prompt also implements the structured prompt refraction a
// division's footer exposes: a single-line Resource parsed through
// the command grammar above, with a Revisions history stack for
// recall.
//
// Grounded on original_source/elements/session.py's command-line
// bookkeeping (the revision stack, see revision.go) and on
// internal/view.Refraction for the single-line-window Go shape, which
// a prompt refraction specializes by fixing Area.Lines to 1.
package prompt

import (
	"github.com/keystorm/keystorm/internal/alignment"
	"github.com/keystorm/keystorm/internal/element"
	"github.com/keystorm/keystorm/internal/reform"
	"github.com/keystorm/keystorm/internal/view"
)

// Refraction is a division's prompt-footer view: a one-line Resource
// holding the command text currently being composed, plus the
// Revisions history that Up/Down recall walks.
type Refraction struct {
	*view.Refraction
	Revisions *Revisions
}

// New creates a prompt Refraction over a fresh empty-line Resource.
func New(area alignment.Area, rf reform.Reformulations) (*Refraction, error) {
	res := element.NewResource("/dev/prompt", element.DefaultReformulations())
	if err := res.LnInitialize(); err != nil {
		return nil, err
	}
	promptArea := area
	promptArea.Lines = 1
	return &Refraction{
		Refraction: view.New(res, rf, promptArea),
		Revisions:  NewRevisions(),
	}, nil
}

// Text returns the prompt's current (only) line of content.
func (p *Refraction) Text() (string, error) {
	line, err := p.Source.Sole(0)
	if err != nil {
		return "", err
	}
	return line.Content, nil
}

// Submit parses the prompt's current text as a Command, pushes it onto
// the Revisions stack, and clears the line, matching the
// activate-then-reset cycle location.py's open/save handlers use for
// their own structured-editing refractions.
func (p *Refraction) Submit() (Command, error) {
	text, err := p.Text()
	if err != nil {
		return Command{}, err
	}
	cmd, err := Parse(text)
	if err != nil {
		return Command{}, err
	}
	p.Revisions.Push(text)
	if err := p.clear(); err != nil {
		return Command{}, err
	}
	p.ColPos = 0
	return cmd, nil
}

// Recall replaces the prompt's current text with the revision at the
// far end of dir (negative = Previous, positive = Next), returning
// false if the recall stack has nothing further in that direction.
func (p *Refraction) Recall(dir int) (bool, error) {
	var text string
	var ok bool
	if dir < 0 {
		text, ok = p.Revisions.Previous()
	} else {
		text, ok = p.Revisions.Next()
	}
	if !ok {
		return false, nil
	}
	if err := p.clear(); err != nil {
		return false, err
	}
	if text != "" {
		if err := p.Source.InsertCodepoints(0, 0, text); err != nil {
			return false, err
		}
	}
	p.ColPos = len([]rune(text))
	return true, nil
}

func (p *Refraction) clear() error {
	line, err := p.Source.Sole(0)
	if err != nil {
		return err
	}
	n := len([]rune(line.Content))
	if n == 0 {
		return nil
	}
	return p.Source.DeleteCodepoints(0, 0, n)
}
