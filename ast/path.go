// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"

	"github.com/jsonedit/jcode/keypath"
)

// SetPath sets the value at the dotted key path below o, creating missing
// intermediate objects along the way. It reports an error if the path is
// empty or if an existing intermediate value is not an object; in the error
// case o is left unmodified.
//
// Path segments are property names only: a numeric segment addresses an
// object member named by the number, never an array index. This mirrors how
// the code-block detector builds key paths.
func (o *Object) SetPath(path string, v Value) error {
	names := keypath.Split(path)
	if len(names) == 0 {
		return errors.New("empty key path")
	}

	// Walk existing structure first, so nothing is created if the path turns
	// out to be unusable.
	cur, i := o, 0
	for i < len(names)-1 {
		m := cur.Find(names[i])
		if m == nil {
			break
		}
		next, ok := m.Value.(*Object)
		if !ok {
			return fmt.Errorf("path %q: member %q is %s, not an object", path, names[i], kindOf(m.Value))
		}
		cur, i = next, i+1
	}

	// Create any missing intermediate objects.
	for ; i < len(names)-1; i++ {
		next := new(Object)
		cur.Members = append(cur.Members, &Member{Key: names[i], Value: next})
		cur = next
	}

	last := names[len(names)-1]
	if m := cur.Find(last); m != nil {
		m.Value = v
	} else {
		cur.Members = append(cur.Members, &Member{Key: last, Value: v})
	}
	return nil
}

// FindPath returns the value at the dotted key path below o, or nil if any
// segment of the path is missing or crosses a non-object value.
func (o *Object) FindPath(path string) Value {
	names := keypath.Split(path)
	if len(names) == 0 {
		return nil
	}
	cur := o
	for _, name := range names[:len(names)-1] {
		m := cur.Find(name)
		if m == nil {
			return nil
		}
		next, ok := m.Value.(*Object)
		if !ok {
			return nil
		}
		cur = next
	}
	if m := cur.Find(names[len(names)-1]); m != nil {
		return m.Value
	}
	return nil
}

func kindOf(v Value) string {
	switch v.(type) {
	case *Object:
		return "an object"
	case *Array:
		return "an array"
	case *String:
		return "a string"
	case *Integer, *Number:
		return "a number"
	case *Bool:
		return "a boolean"
	case *Null:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
