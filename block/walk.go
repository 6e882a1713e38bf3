// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package block

import (
	"github.com/jsonedit/jcode"
	"github.com/jsonedit/jcode/keypath"
)

// A candidate records a string-valued leaf seen during the structural walk.
// The span covers the literal's content, quotes excluded.
type candidate struct {
	field string
	path  string
	span  jcode.Span
}

// scanTree parses text tolerantly and collects every string value that is
// owned by a property, in visitation order. A non-nil error means the parse
// stopped early; candidates gathered up to that point are still returned,
// since a damaged document usually has a long valid prefix.
func (d *Detector) scanTree(text string) ([]candidate, error) {
	h := new(walker)
	p := jcode.NewParser(text)
	p.AllowComments(true)
	p.AllowTrailingCommas(true)
	err := p.Parse(h)
	return h.cands, err
}

// A walker accumulates string-value candidates while tracking the chain of
// property names leading to the current position.
//
// The path stack is member-scoped: a name is pushed when its member begins
// and popped when the member ends. Sibling members therefore never see each
// other's names, and array elements push nothing, so no index marker can
// survive past the end of an array.
type walker struct {
	path  []string
	cands []candidate
}

func (w *walker) BeginMember(loc jcode.Anchor) error {
	key, err := jcode.Unquote(loc.Text())
	if err != nil {
		return err
	}
	w.path = append(w.path, key)
	return nil
}

func (w *walker) EndMember(loc jcode.Anchor) error {
	w.path = w.path[:len(w.path)-1]
	return nil
}

func (w *walker) Value(loc jcode.Anchor) error {
	if loc.Token() != jcode.String || len(w.path) == 0 {
		return nil // not a string, or a value with no owning property
	}
	sp := loc.Span()
	w.cands = append(w.cands, candidate{
		field: w.path[len(w.path)-1],
		path:  keypath.Join(w.path),
		span:  jcode.Span{Pos: sp.Pos + 1, End: sp.End - 1},
	})
	return nil
}

func (w *walker) BeginObject(loc jcode.Anchor) error { return nil }
func (w *walker) EndObject(loc jcode.Anchor) error   { return nil }
func (w *walker) BeginArray(loc jcode.Anchor) error  { return nil }
func (w *walker) EndArray(loc jcode.Anchor) error    { return nil }
func (w *walker) EndOfInput(loc jcode.Anchor)        {}
