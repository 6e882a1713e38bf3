// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"

	"github.com/jsonedit/jcode"
)

// Parse parses text and returns the JSON values it contains, in order.
// Comments and trailing commas are accepted. In case of error, any complete
// values already parsed are returned along with the error.
func Parse(text string) ([]Value, error) {
	h := new(parseHandler)
	p := jcode.NewParser(text)
	p.AllowComments(true)
	p.AllowTrailingCommas(true)
	if err := p.Parse(h); err != nil {
		return h.vals, err
	}
	if len(h.stk) != 0 {
		return h.vals, errors.New("incomplete value")
	}
	return h.vals, nil
}

// ParseSingle parses text as a single JSON document and returns its root
// value. It reports an error if the text does not contain exactly one value.
func ParseSingle(text string) (Value, error) {
	vs, err := Parse(text)
	if err != nil {
		return nil, err
	} else if len(vs) != 1 {
		return nil, fmt.Errorf("got %d values, want 1", len(vs))
	}
	return vs[0], nil
}

// A parseHandler implements the jcode.Handler interface to construct syntax
// trees for JSON values.
type parseHandler struct {
	stk  []Value // incomplete objects, arrays, and members
	vals []Value // completed top-level values
}

// reduceValue attaches a completed value to the structure under
// construction atop the stack, or records it as a top-level value.
func (h *parseHandler) reduceValue(v Value) {
	if len(h.stk) == 0 {
		h.vals = append(h.vals, v)
		return
	}
	switch t := h.stk[len(h.stk)-1].(type) {
	case *Member:
		t.Value = v
		t.end = v.Span().End
	case *Array:
		t.Values = append(t.Values, v)
	}
}

func (h *parseHandler) top() Value { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() Value {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v Value) { h.stk = append(h.stk, v) }

func (h *parseHandler) BeginObject(loc jcode.Anchor) error {
	h.push(&Object{pos: loc.Span().Pos})
	return nil
}

func (h *parseHandler) EndObject(loc jcode.Anchor) error {
	obj := h.pop().(*Object)
	obj.end = loc.Span().End
	h.reduceValue(obj)
	return nil
}

func (h *parseHandler) BeginArray(loc jcode.Anchor) error {
	h.push(&Array{pos: loc.Span().Pos})
	return nil
}

func (h *parseHandler) EndArray(loc jcode.Anchor) error {
	arr := h.pop().(*Array)
	arr.end = loc.Span().End
	h.reduceValue(arr)
	return nil
}

func (h *parseHandler) BeginMember(loc jcode.Anchor) error {
	// The object this member belongs to is atop the stack. Add the new
	// member to its collection eagerly, so that completing the member later
	// only needs to pop it.
	key, err := jcode.Unquote(loc.Text())
	if err != nil {
		return fmt.Errorf("invalid member key: %w", err)
	}
	mem := &Member{pos: loc.Span().Pos, Key: key}
	obj := h.top().(*Object)
	obj.Members = append(obj.Members, mem)
	h.push(mem)
	return nil
}

func (h *parseHandler) EndMember(loc jcode.Anchor) error {
	h.pop()
	return nil
}

func (h *parseHandler) Value(loc jcode.Anchor) error {
	sp := loc.Span()
	d := datum{pos: sp.Pos, end: sp.End, text: loc.Text()}
	switch loc.Token() {
	case jcode.String:
		h.reduceValue(&String{datum: d})
	case jcode.Integer:
		h.reduceValue(&Integer{datum: d})
	case jcode.Number:
		h.reduceValue(&Number{datum: d})
	case jcode.True, jcode.False:
		h.reduceValue(&Bool{datum: d, value: loc.Token() == jcode.True})
	case jcode.Null:
		h.reduceValue(&Null{datum: d})
	default:
		return fmt.Errorf("unknown value %v", loc.Token())
	}
	return nil
}

func (h *parseHandler) EndOfInput(loc jcode.Anchor) {}
