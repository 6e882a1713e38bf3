// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

// Package jcode implements a tolerant scanner and event-driven parser for
// JSON and JSONC (JSON with comments and trailing commas) source text, with
// byte-exact location tracking for every token.
//
// # Scanning
//
// The Scanner type implements a lexical scanner over in-memory source text.
// Call Next to advance to the next token; Next reports false at the end of
// the input or on a lexical error:
//
//	s := jcode.NewScanner(text)
//	for s.Next() {
//	   log.Printf("Next token: %v at %v", s.Token(), s.Span())
//	}
//	if s.Err() != nil {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//
// Every token carries its byte span in the original text, which is what makes
// the scanner suitable for locating string literals under a cursor offset.
//
// # Parsing
//
// The Parser type drives a Handler with events corresponding to the syntax
// of the input. In case of error, parsing stops and an error of concrete
// type *jcode.SyntaxError is returned:
//
//	p := jcode.NewParser(text)
//	p.AllowComments(true)
//	p.AllowTrailingCommas(true)
//	if err := p.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The methods of a Handler correspond to the grammar of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// The parser ensures that corresponding Begin and End methods are correctly
// paired, or that a SyntaxError is reported. Events delivered before a syntax
// error describe a valid prefix of the input; a handler that accumulates
// state may keep what it has seen, which is how the code-block detector in
// the block package recovers useful results from damaged documents.
//
// # Strings
//
// Quote and Unescape convert between literal text and the escaped form used
// inside JSON string values. Unescape is total: it accepts escape sequences
// beyond the JSON grammar (\xXX, octal) and passes unrecognized input through
// rather than failing. See the internal/escape package for the exact rules.
package jcode
