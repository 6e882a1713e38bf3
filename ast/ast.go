// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

// Package ast defines a typed syntax tree for JSON values in which every
// node carries its byte span in the source text, and a parser that builds
// such trees from JSON/JSONC source.
//
// The tree is the write-back surface for edited code blocks: parse the
// document, set a value at a dotted key path, and serialize the whole tree
// back out. Mutation happens through typed nodes rather than untyped maps,
// so a path that runs into a value of the wrong kind fails loudly instead
// of clobbering data.
package ast

import (
	"strconv"
	"strings"

	"github.com/jsonedit/jcode"
)

// A Value is an arbitrary JSON value.
type Value interface {
	Span() jcode.Span // the byte span of the value in the source, zero if synthesized
	JSON() string     // the value rendered as compact JSON
}

// A Datum is a Value with a flat text representation.
type Datum interface {
	Value
	Text() string
}

func newSpan(pos, end int) jcode.Span { return jcode.Span{Pos: pos, End: end} }

// An Object is a collection of key-value members.
type Object struct {
	pos, end int

	Members []*Member
}

// Span satisfies the Value interface.
func (o *Object) Span() jcode.Span { return newSpan(o.pos, o.end) }

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(m.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object. The Key is the
// decoded (unquoted) property name.
type Member struct {
	pos, end int

	Key   string
	Value Value
}

// Span satisfies the Value interface.
func (m *Member) Span() jcode.Span { return newSpan(m.pos, m.end) }

// JSON satisfies the Value interface.
func (m *Member) JSON() string { return jcode.Quote(m.Key) + ":" + m.Value.JSON() }

// An Array is a sequence of values.
type Array struct {
	pos, end int

	Values []Value
}

// Span satisfies the Value interface.
func (a *Array) Span() jcode.Span { return newSpan(a.pos, a.end) }

// JSON satisfies the Value interface.
func (a *Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.Values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

type datum struct {
	pos, end int
	text     string
}

// Span satisfies the Value interface.
func (d datum) Span() jcode.Span { return newSpan(d.pos, d.end) }

// Text satisfies the Datum interface.
func (d datum) Text() string { return d.text }

// JSON satisfies the Value interface.
func (d datum) JSON() string { return d.text }

// An Integer is an integer value.
type Integer struct{ datum }

// Int64 returns the value of z as an int64. It panics if the text of z does
// not encode a valid integer, which cannot happen for a parsed tree.
func (z Integer) Int64() int64 {
	v, err := strconv.ParseInt(z.text, 10, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// A Number is a floating-point value.
type Number struct{ datum }

// Float64 returns the value of n as a float64. It panics if the text of n
// does not encode a valid number, which cannot happen for a parsed tree.
func (n Number) Float64() float64 {
	v, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// A Bool is a Boolean constant, true or false.
type Bool struct {
	datum
	value bool
}

// Value reports the truth value of b.
func (b Bool) Value() bool { return b.value }

// A String is a string value. Its text is the quoted source form.
type String struct{ datum }

// NewString constructs a synthetic String whose decoded content is text.
func NewString(text string) *String {
	return &String{datum{text: jcode.Quote(text)}}
}

// Unescape returns the decoded content of s.
func (s String) Unescape() string {
	dec, err := jcode.Unquote(s.text)
	if err != nil {
		panic(err)
	}
	return dec
}

// Null represents the null constant.
type Null struct{ datum }
