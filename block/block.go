// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

// Package block locates code fragments embedded as string values inside
// JSON/JSONC documents.
//
// Given the raw text of a document and a cursor offset, Detect reports
// whether the offset falls inside a string literal value, and if so returns
// the unescaped content of the literal, its exact byte range, the property
// name that owns it, and the dotted key path addressing it from the document
// root. The primary path is a tolerant structural parse; when no structure
// at all is recoverable, a regexp-based partial scan of the raw text takes
// over.
package block

import (
	"github.com/jsonedit/jcode"
	"github.com/jsonedit/jcode/log"
)

// CodeBlockInfo describes a string literal value found under a cursor
// offset. Start and End are the byte offsets of the literal's content in the
// original document, quotes excluded, with Start <= End; Code is the
// unescaped content.
type CodeBlockInfo struct {
	Code      string // unescaped content of the string literal
	Start     int    // byte offset of the first content byte
	End       int    // byte offset one past the last content byte
	FieldName string // the property name owning this value

	// KeyPath is the dot-joined chain of property names from the document
	// root to this value. Array elements contribute no segment, so two
	// elements of the same array holding the same sub-path are not
	// distinguishable by KeyPath alone; callers that write back through the
	// path must accept this ambiguity.
	KeyPath string

	// Language is a best-effort classification of the embedded code,
	// assigned by the caller after detection (see the lang package). The
	// detector itself always leaves it empty.
	Language string
}

// A Detector locates code blocks in document text. The zero value is ready
// to use and logs nothing; use New to inject a logger. A Detector is
// stateless across calls and safe for concurrent use.
type Detector struct {
	log log.Logger
}

// An Option configures a Detector.
type Option func(*Detector)

// WithLogger injects the log sink used for parse diagnostics and recovered
// panics. The default discards everything.
func WithLogger(lg log.Logger) Option {
	return func(d *Detector) { d.log = lg }
}

// New constructs a Detector with the given options.
func New(opts ...Option) *Detector {
	d := new(Detector)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect locates the string literal value containing the given byte offset
// and returns its descriptor, or nil if the offset is not inside any string
// value. A cursor at either edge of the literal's content counts as inside.
//
// Detect never panics or returns an error: an unexpected failure during the
// walk is logged and reported as no detection. A fresh descriptor is
// allocated on every call; nothing is cached.
func (d *Detector) Detect(text string, offset int) (info *CodeBlockInfo) {
	defer func() {
		if p := recover(); p != nil {
			d.logger().Errorf("detect: recovered from %v; reporting no detection", p)
			info = nil
		}
	}()
	if offset < 0 || offset > len(text) {
		return nil
	}

	cands, err := d.scanTree(text)
	for _, c := range cands {
		if c.span.Contains(offset) {
			return &CodeBlockInfo{
				Code:      jcode.Unescape(text[c.span.Pos:c.span.End]),
				Start:     c.span.Pos,
				End:       c.span.End,
				FieldName: c.field,
				KeyPath:   c.path,
			}
		}
	}
	if err != nil {
		// The structural walk got nothing useful out of the document; try
		// recovering a string from the raw text.
		d.logger().Debugf("detect: structural parse failed (%v); scanning raw text", err)
		return d.scanPartial(text, offset)
	}
	return nil
}

func (d *Detector) logger() log.Logger {
	if d.log != nil {
		return d.log
	}
	return log.Discard
}

// Detect invokes the default Detector, which logs through log.Default.
func Detect(text string, offset int) *CodeBlockInfo {
	return defaultDetector.Detect(text, offset)
}

var defaultDetector = New(WithLogger(log.Default))
