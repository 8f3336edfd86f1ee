// Package annotation models the "annotations/completions" data spec §1
// names as external data the core consumes rather than produces: a
// JSON document of (element, position, kind, text) entries keyed to a
// Resource's line offsets, queried by the view layer when composing a
// Phrase's field-annotation-* fields (spec §6's taxonomy) and by the
// prompt refraction when filtering entries by a glob pattern.
//
// There is no teacher package for this concern (the teacher has no
// annotation subsystem); the JSON-document shape is grounded on the
// four tidwall libraries themselves, carried from the teacher's go.mod
// as indirect JSON-path dependencies: gjson reads the document without
// unmarshalling it into a Go struct, sjson patches it in place, pretty
// formats it back out for a transcript dump, and match filters entries
// by a shell-glob Kind pattern.
package annotation

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/match"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/keystorm/keystorm/internal/fields"
)

// Entry is one annotation record: a position within a Resource's
// elements, a Kind naming the annotation source (e.g. "diagnostic",
// "completion"), and its display Text.
type Entry struct {
	Element  int    `json:"element"`
	Position int    `json:"position"`
	Kind     string `json:"kind"`
	Text     string `json:"text"`
}

// Class returns the spec §6 field-class this entry's Kind renders
// with: the "field-annotation-" prefix followed by Kind, falling back
// to the unsuffixed base class when Kind is empty.
func (e Entry) Class() fields.Class {
	if e.Kind == "" {
		return fields.ClassFieldAnnotation
	}
	return fields.Class("field-annotation-" + e.Kind)
}

// Store holds a JSON array of Entry documents as raw text, mutated
// in place through sjson/gjson rather than marshaled Go structs, so a
// completion source can hand it a ready-made JSON fragment without a
// round trip through Go types.
type Store struct {
	mu  sync.RWMutex
	raw string
}

// New returns an empty Store.
func New() *Store {
	return &Store{raw: "[]"}
}

// Parse builds a Store from a previously serialized JSON array. An
// invalid document is reported as an error rather than silently
// treated as empty, since a configuration-failure caller (spec §7)
// needs to distinguish "no annotations yet" from "malformed source".
func Parse(data []byte) (*Store, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("annotation: invalid JSON document")
	}
	return &Store{raw: string(data)}, nil
}

// Add appends e to the document, returning its index.
func (s *Store) Add(e Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := int(gjson.Get(s.raw, "#").Int())
	next, err := sjson.Set(s.raw, strconv.Itoa(idx)+".element", e.Element)
	if err != nil {
		return -1, err
	}
	next, err = sjson.Set(next, strconv.Itoa(idx)+".position", e.Position)
	if err != nil {
		return -1, err
	}
	next, err = sjson.Set(next, strconv.Itoa(idx)+".kind", e.Kind)
	if err != nil {
		return -1, err
	}
	next, err = sjson.Set(next, strconv.Itoa(idx)+".text", e.Text)
	if err != nil {
		return -1, err
	}
	s.raw = next
	return idx, nil
}

// RemoveAt deletes the entry at idx, shifting later entries down.
func (s *Store) RemoveAt(idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := sjson.Delete(s.raw, strconv.Itoa(idx))
	if err != nil {
		return err
	}
	s.raw = next
	return nil
}

// For returns every entry attached to element, ordered by Position.
func (s *Store) For(element int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	gjson.Parse(s.raw).ForEach(func(_, v gjson.Result) bool {
		if int(v.Get("element").Int()) == element {
			out = append(out, entryFromResult(v))
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// MatchingKind returns every entry whose Kind matches the shell-glob
// pattern (e.g. "diag*" matches "diagnostic"), using tidwall/match's
// glob semantics.
func (s *Store) MatchingKind(pattern string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	gjson.Parse(s.raw).ForEach(func(_, v gjson.Result) bool {
		if match.Match(v.Get("kind").String(), pattern) {
			out = append(out, entryFromResult(v))
		}
		return true
	})
	return out
}

// Len returns the number of entries currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(gjson.Get(s.raw, "#").Int())
}

// Bytes returns the raw JSON document.
func (s *Store) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return []byte(s.raw)
}

// Pretty returns the document reformatted for human-readable display
// in a transcript, via tidwall/pretty.
func (s *Store) Pretty() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pretty.Pretty([]byte(s.raw))
}

func entryFromResult(v gjson.Result) Entry {
	return Entry{
		Element:  int(v.Get("element").Int()),
		Position: int(v.Get("position").Int()),
		Kind:     v.Get("kind").String(),
		Text:     v.Get("text").String(),
	}
}
