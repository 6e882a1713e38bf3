// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

// Package session manages open code-editing sessions over JSON/JSONC
// documents and performs the write-back of edited code.
//
// A session is created by detecting the code block under a cursor offset;
// it is keyed by (document identity, key path) so a later write-back can be
// routed to the right value even after the editing buffer has been detached
// from the original document. Write-back is the inverse of detection: the
// document is re-parsed, the value at the dotted key path is replaced, and
// the whole document is serialized with stable indentation. A document that
// no longer parses is never modified; the error is returned so the caller
// can tell the user their edit was not applied.
package session

import (
	"fmt"
	"sync"

	"github.com/tailscale/hujson"
	"github.com/tidwall/pretty"

	"github.com/jsonedit/jcode/ast"
	"github.com/jsonedit/jcode/block"
	"github.com/jsonedit/jcode/lang"
	"github.com/jsonedit/jcode/log"
)

// A Session describes one open code-editing surface.
type Session struct {
	Doc       string // identity of the owning document (a URI or file path)
	KeyPath   string // dotted key path of the edited value
	FieldName string // immediate property name owning the value
	Language  string // classifier result, "" when unknown
	Code      string // current (unescaped) code content
	Start     int    // byte offset of the value's content in the document
	End       int    // byte offset one past the content
}

// A Manager tracks open sessions and applies write-backs. It is safe for
// concurrent use.
type Manager struct {
	det    *block.Detector
	log    log.Logger
	indent string

	mu   sync.Mutex
	open map[sessionKey]*Session
}

type sessionKey struct{ doc, path string }

// An Option configures a Manager.
type Option func(*Manager)

// WithLogger injects the log sink for session diagnostics.
func WithLogger(lg log.Logger) Option {
	return func(m *Manager) { m.log = lg }
}

// WithIndent sets the indentation unit used when serializing documents
// during write-back. The default is two spaces.
func WithIndent(indent string) Option {
	return func(m *Manager) { m.indent = indent }
}

// WithDetector replaces the detector used by Open.
func WithDetector(d *block.Detector) Option {
	return func(m *Manager) { m.det = d }
}

// NewManager constructs a Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		det:    block.New(),
		log:    log.Discard,
		indent: "  ",
		open:   make(map[sessionKey]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open locates the code block under offset in the document text and opens a
// session for it, classifying the embedded language along the way. If a
// session for the same (doc, key path) already exists it is refreshed in
// place. Open reports false when no code block is found at the offset.
func (m *Manager) Open(doc, text string, offset int) (*Session, bool) {
	info := m.det.Detect(text, offset)
	if info == nil {
		return nil, false
	}
	info.Language = lang.Classify(info.FieldName, info.Code)

	s := &Session{
		Doc:       doc,
		KeyPath:   info.KeyPath,
		FieldName: info.FieldName,
		Language:  info.Language,
		Code:      info.Code,
		Start:     info.Start,
		End:       info.End,
	}
	m.mu.Lock()
	m.open[sessionKey{doc, info.KeyPath}] = s
	m.mu.Unlock()
	m.log.Debugf("session: opened %q at %q (%s)", doc, info.KeyPath, orUnknown(info.Language))
	return s, true
}

// Get returns the open session for (doc, keyPath), if any.
func (m *Manager) Get(doc, keyPath string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.open[sessionKey{doc, keyPath}]
	return s, ok
}

// Close discards the session for (doc, keyPath), if any.
func (m *Manager) Close(doc, keyPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.open, sessionKey{doc, keyPath})
}

// Apply writes the edited code back into the document and returns the
// updated document bytes. The original document is re-parsed as JSON
// (comments and trailing commas are standardized away first), the value at
// keyPath is replaced, creating missing intermediate objects, and the whole
// document is re-serialized with stable indentation.
//
// On any failure the returned bytes are nil and the original document is
// untouched; the error is worth surfacing to the user, since it means an
// edit could not be applied.
func (m *Manager) Apply(doc, keyPath string, original []byte, code string) ([]byte, error) {
	std, err := hujson.Standardize(original)
	if err != nil {
		return nil, fmt.Errorf("write-back %q: document is not valid JSON: %w", doc, err)
	}
	root, err := ast.ParseSingle(string(std))
	if err != nil {
		return nil, fmt.Errorf("write-back %q: re-parse: %w", doc, err)
	}
	obj, ok := root.(*ast.Object)
	if !ok {
		return nil, fmt.Errorf("write-back %q: document root is not an object", doc)
	}
	if err := obj.SetPath(keyPath, ast.NewString(code)); err != nil {
		return nil, fmt.Errorf("write-back %q: %w", doc, err)
	}
	out := pretty.PrettyOptions([]byte(obj.JSON()), &pretty.Options{Indent: m.indent})

	m.mu.Lock()
	if s, ok := m.open[sessionKey{doc, keyPath}]; ok {
		s.Code = code
	}
	m.mu.Unlock()
	m.log.Infof("session: wrote %d bytes back to %q at %q", len(code), doc, keyPath)
	return out, nil
}

func orUnknown(language string) string {
	if language == "" {
		return "unknown language"
	}
	return language
}
