// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package jcode

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// An Anchor represents the current token during parsing. The methods of an
// Anchor report the location, token type, and contents of the token.
//
// The Anchor passed to a handler method is only valid for the duration of
// that method call. Text returns a copy, so strings obtained from it may be
// retained freely.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() string       // Returns the raw (undecoded) text of the anchor
	Span() Span         // Returns the byte span of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc.  The text of the key is
	// still quoted; the handler is responsible for unescaping key values if
	// the plain string is required (see jcode.Unquote).
	BeginMember(loc Anchor) error

	// End the current object member, giving the location and type of the
	// token that terminated the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token. String tokens are quoted.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// CommentHandler is an optional interface that a Handler may implement to
// handle comment tokens. If a handler implements this method and comments are
// enabled in the parser, Comment will be called for each comment token that
// occurs in the input. If the handler does not provide this method, comments
// will be silently discarded.
type CommentHandler interface {
	// Process the line or block comment at the specified location.
	// Line comments include their leading "//" and trailing newline (if
	// present). Block comments include their leading "/*" and trailing "*/".
	Comment(loc Anchor)
}

// A Parser consumes source text and delivers events to a Handler
// corresponding with the structure of the input.
type Parser struct {
	s      *Scanner
	tcomma bool // allow trailing commas in objects and arrays
}

// NewParser constructs a new Parser that consumes text.
func NewParser(text string) *Parser { return &Parser{s: NewScanner(text)} }

// AllowComments configures the scanner associated with p to report (true) or
// reject (false) comment tokens.
func (p *Parser) AllowComments(ok bool) { p.s.AllowComments(ok) }

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// trailing commas in objects and arrays.
func (p *Parser) AllowTrailingCommas(ok bool) { p.tcomma = ok }

// Parse parses the input and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has concrete type [*SyntaxError].
//
// Events delivered to h before a syntax error describe a structurally valid
// prefix of the input; state the handler accumulated from them remains
// intact and usable after Parse returns the error.
func (p *Parser) Parse(h Handler) (err error) {
	defer p.recoverParseError(&err)

	for {
		err := p.next(h)
		if err == io.EOF {
			h.EndOfInput(p.s)
			return nil
		} else if err != nil {
			p.syntaxError(err, "%v", err)
		}
		p.parseElement(h)
	}
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (p *Parser) parseElement(h Handler) {
	switch tok := p.s.Token(); tok {
	case LBrace:
		p.checkError(h.BeginObject(p.s))
		p.parseMembers(h)
		p.require(RBrace)
		p.checkError(h.EndObject(p.s))
	case LSquare:
		p.checkError(h.BeginArray(p.s))
		p.parseElements(h)
		p.require(RSquare)
		p.checkError(h.EndArray(p.s))
	case Integer, Number, String, True, False, Null:
		p.checkError(h.Value(p.s))
	case RBrace, RSquare, Comma, Colon:
		p.syntaxError(nil, "unexpected %v", tok)
	default:
		p.syntaxError(nil, "unknown token %v", tok)
	}
}

// parseMembers consumes zero or more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (p *Parser) parseMembers(h Handler) {
	tok := p.advance(h, RBrace, String)
	if tok == RBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		p.checkError(h.BeginMember(p.s))
		p.advance(h, Colon)
		p.advance(h)
		p.parseElement(h)

		// Check whether we have more members (",") or are done ("}").
		tok := p.advance(h, RBrace, Comma)
		p.checkError(h.EndMember(p.s))
		if tok == RBrace {
			return // end of object
		} else if p.tcomma {
			// If trailing commas are allowed and the next token is a close
			// brace, consider this a valid end of the object. Otherwise, it
			// must be a key for a subsequent member.
			if next := p.advance(h, String, RBrace); next == RBrace {
				return // end of object with trailing comma
			}
		} else {
			p.advance(h, String) // advance to next key
		}
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (p *Parser) parseElements(h Handler) {
	if tok := p.advance(h); tok == RSquare {
		return // end of array
	}
	p.parseElement(h)
	for {
		tok := p.advance(h, RSquare, Comma)
		if tok == RSquare {
			return // end of array
		}

		// If trailing commas are allowed and the next token is a close
		// bracket, consider this a valid end of the array; otherwise it will
		// fail on the next element.
		if next := p.advance(h); p.tcomma && next == RSquare {
			return // end of array with trailing comma
		}
		p.parseElement(h)
	}
}

// next fetches the next non-comment token for the parser, routing comment
// tokens to h if it implements CommentHandler. At the end of the input it
// returns io.EOF.
func (p *Parser) next(h Handler) error {
	for p.s.Next() {
		if tok := p.s.Token(); tok == LineComment || tok == BlockComment {
			if ch, ok := h.(CommentHandler); ok {
				ch.Comment(p.s)
			}
			continue
		}
		return nil
	}
	return p.s.err // io.EOF at the end of the input
}

func (p *Parser) advance(h Handler, tokens ...Token) Token {
	if err := p.next(h); err != nil {
		p.syntaxError(err, "%v", tokLabel(tokens, err))
	}
	tok := p.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		p.syntaxError(nil, "%v", tokLabel(tokens, tok))
	}
	return tok
}

func (p *Parser) require(token Token) {
	if tok := p.s.Token(); tok != token {
		p.syntaxError(nil, "expected %v, got %v", token, tok)
	}
}

func (p *Parser) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

func (p *Parser) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: p.s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (p *Parser) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprint(got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
