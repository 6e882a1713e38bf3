// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package jcode

import (
	"fmt"
	"io"
	"strings"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from JSON source text held in memory.  Each
// call to Next advances the scanner to the next token and reports whether a
// token is available. The scanner does not validate escape sequences inside
// strings; any character may follow a backslash, and the escape codec is
// responsible for making sense of it later. This keeps the scanner usable on
// the loosely-formed documents the detector has to cope with.
type Scanner struct {
	src      mem.RO
	comments bool // allow comment tokens
	tok      Token
	err      error

	pos, end int // start and end offsets of the current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner over text.
func NewScanner(text string) *Scanner { return &Scanner{src: mem.S(text)} }

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are a non-standard extension of the JSON spec.  If
// enabled, C++ style block comments (/* ... */) and line comments (// ...)
// are recognized and emitted as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input and reports whether a token
// is available. Once Next returns false, it will continue to do so; use Err
// to distinguish a lexical error from the end of the input.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	s.tok = Invalid

	// Discard whitespace preceding the token.
	for s.end < s.src.Len() && isSpaceByte(s.src.At(s.end)) {
		s.advance()
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.end >= s.src.Len() {
		s.err = io.EOF
		return false
	}

	ch := s.advance()
	if t, ok := selfDelim(ch); ok {
		s.tok = t
		return true
	}
	switch {
	case ch == '"':
		return s.scanString()
	case ch == '-' || isDigit(ch):
		return s.scanNumber(ch)
	case ch == '/' && s.comments:
		return s.scanComment()
	case ch == 't':
		return s.scanKeyword("true", True)
	case ch == 'f':
		return s.scanKeyword("false", False)
	case ch == 'n':
		return s.scanKeyword("null", Null)
	}
	return s.failf("unexpected %q", ch)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error that caused Next to report false, or nil if scanning
// stopped at the end of the input.
func (s *Scanner) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// Text returns a copy of the raw (undecoded) text of the current token.
func (s *Scanner) Text() string { return s.slice(s.pos, s.end).StringCopy() }

// Span returns the byte span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// advance consumes and returns the byte at the scanning position.
// Precondition: the position is in bounds.
func (s *Scanner) advance() byte {
	ch := s.src.At(s.end)
	s.end++
	if ch == '\n' {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol++
	}
	return ch
}

func (s *Scanner) slice(lo, hi int) mem.RO { return s.src.SliceFrom(lo).SliceTo(hi - lo) }

// scanString consumes the body of a string literal whose opening quote has
// already been consumed. The only hard requirement is a closing quote; escape
// sequences are skipped without validation.
func (s *Scanner) scanString() bool {
	var esc bool
	for s.end < s.src.Len() {
		ch := s.advance()
		if esc {
			esc = false
			continue
		}
		switch ch {
		case '\\':
			esc = true
		case '"':
			s.tok = String
			return true
		}
	}
	return s.failf("unterminated string")
}

func (s *Scanner) scanNumber(first byte) bool {
	if first == '-' {
		if s.end >= s.src.Len() || !isDigit(s.src.At(s.end)) {
			return s.failf("missing digits after sign")
		}
	}
	for s.end < s.src.Len() && isDigit(s.src.At(s.end)) {
		s.advance()
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if s.end < s.src.Len() && s.src.At(s.end) == '.' {
		s.advance()
		if n := s.digits(); n == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if s.end < s.src.Len() && (s.src.At(s.end) == 'e' || s.src.At(s.end) == 'E') {
		s.advance()
		if s.end < s.src.Len() && (s.src.At(s.end) == '+' || s.src.At(s.end) == '-') {
			s.advance()
		}
		if n := s.digits(); n == 0 {
			return s.failf("missing exponent digits")
		}
		s.tok = Number
	}
	return true
}

func (s *Scanner) digits() (n int) {
	for s.end < s.src.Len() && isDigit(s.src.At(s.end)) {
		s.advance()
		n++
	}
	return
}

// scanComment consumes a line or block comment whose leading "/" has already
// been consumed.
func (s *Scanner) scanComment() bool {
	if s.end >= s.src.Len() {
		return s.failf("unexpected %q", byte('/'))
	}
	switch ch := s.advance(); ch {
	case '/': // line comment, to LF or end of input
		for s.end < s.src.Len() {
			if s.advance() == '\n' {
				break
			}
		}
		s.tok = LineComment
		return true

	case '*': // block comment, to */
		var star bool
		for s.end < s.src.Len() {
			ch := s.advance()
			if star && ch == '/' {
				s.tok = BlockComment
				return true
			}
			star = ch == '*'
		}
		return s.failf("unterminated block comment")

	default:
		return s.failf("invalid %q in comment", ch)
	}
}

// scanKeyword consumes the run of name bytes starting at the current token
// position and checks it against the expected constant spelling.
func (s *Scanner) scanKeyword(word string, tok Token) bool {
	for s.end < s.src.Len() && isNameByte(s.src.At(s.end)) {
		s.advance()
	}
	if got := s.slice(s.pos, s.end); !got.Equal(mem.S(word)) {
		return s.failf("unknown constant %q", got.StringCopy())
	}
	s.tok = tok
	return true
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) failf(msg string, args ...any) bool {
	s.err = posError{pos: s.end, err: fmt.Errorf(msg, args...)}
	return false
}

func isSpaceByte(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
