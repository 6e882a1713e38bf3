// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package block_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsonedit/jcode/block"
)

// valueSpan returns the content byte range of the first occurrence of the
// quoted literal quoted in doc, quotes excluded.
func valueSpan(t *testing.T, doc, quoted string) (start, end int) {
	t.Helper()
	i := strings.Index(doc, quoted)
	if i < 0 {
		t.Fatalf("literal %#q not found in document", quoted)
	}
	return i + 1, i + len(quoted) - 1
}

func TestDetect(t *testing.T) {
	const doc = `{
  "name": "demo",
  "adaptor": "function test(){ return 1; }",
  "limit": 3
}`
	start, end := valueSpan(t, doc, `"function test(){ return 1; }"`)

	// Every offset within the content range, both edges included, detects
	// the same block.
	for offset := start; offset <= end; offset++ {
		info := block.Detect(doc, offset)
		if info == nil {
			t.Fatalf("Detect(%d): got nil, want a block", offset)
		}
		if info.Start != start || info.End != end {
			t.Errorf("Detect(%d): span %d-%d, want %d-%d", offset, info.Start, info.End, start, end)
		}
		if info.FieldName != "adaptor" {
			t.Errorf("Detect(%d): field %q, want %q", offset, info.FieldName, "adaptor")
		}
		if info.KeyPath != "adaptor" {
			t.Errorf("Detect(%d): path %q, want %q", offset, info.KeyPath, "adaptor")
		}
		if want := "function test(){ return 1; }"; info.Code != want {
			t.Errorf("Detect(%d): code %#q, want %#q", offset, info.Code, want)
		}
		if info.Language != "" {
			t.Errorf("Detect(%d): language %q, want empty", offset, info.Language)
		}
	}

	// Offsets outside any string value's content detect nothing: structural
	// punctuation, property names, non-string values, out of range.
	outside := []int{
		-1,
		0,                                  // the opening brace
		strings.Index(doc, `"adaptor"`) + 2, // inside a property name
		strings.Index(doc, `:`),            // a colon
		strings.Index(doc, `3`),            // inside a number value
		len(doc) + 1,
	}
	for _, offset := range outside {
		if info := block.Detect(doc, offset); info != nil {
			t.Errorf("Detect(%d): got %+v, want nil", offset, info)
		}
	}
}

func TestDetect_keyPaths(t *testing.T) {
	const doc = `{"a": {"x": "one", "y": "two"}, "b": "three"}`
	tests := []struct {
		literal string
		field   string
		path    string
	}{
		{`"one"`, "x", "a.x"},
		{`"two"`, "y", "a.y"}, // not a.x.y: sibling members must not leak
		{`"three"`, "b", "b"}, // not a.b: the outer object was left
	}
	for _, test := range tests {
		start, _ := valueSpan(t, doc, test.literal)
		info := block.Detect(doc, start)
		if info == nil {
			t.Fatalf("Detect in %s: got nil", test.literal)
		}
		if info.FieldName != test.field || info.KeyPath != test.path {
			t.Errorf("Detect in %s: got (%q, %q), want (%q, %q)",
				test.literal, info.FieldName, info.KeyPath, test.field, test.path)
		}
	}
}

func TestDetect_arrays(t *testing.T) {
	const doc = `{
  "steps": [
    {"run": "make all"},
    {"run": "make test"}
  ],
  "cleanup": "rm -rf tmp"
}`
	tests := []struct {
		literal string
		field   string
		path    string
	}{
		// Array elements contribute no path segment; both elements resolve
		// to the same path. A known, documented ambiguity.
		{`"make all"`, "run", "steps.run"},
		{`"make test"`, "run", "steps.run"},

		// After the array closes, no index or element residue survives.
		{`"rm -rf tmp"`, "cleanup", "cleanup"},
	}
	for _, test := range tests {
		start, _ := valueSpan(t, doc, test.literal)
		info := block.Detect(doc, start)
		if info == nil {
			t.Fatalf("Detect in %s: got nil", test.literal)
		}
		if info.FieldName != test.field || info.KeyPath != test.path {
			t.Errorf("Detect in %s: got (%q, %q), want (%q, %q)",
				test.literal, info.FieldName, info.KeyPath, test.field, test.path)
		}
	}

	// A bare string array element has an owning property: the array's.
	const bare = `{"patterns": ["^x$", "y+"]}`
	start, _ := valueSpan(t, bare, `"y+"`)
	info := block.Detect(bare, start)
	if info == nil {
		t.Fatal("Detect in bare element: got nil")
	}
	if info.FieldName != "patterns" || info.KeyPath != "patterns" {
		t.Errorf("bare element: got (%q, %q), want (patterns, patterns)", info.FieldName, info.KeyPath)
	}
}

func TestDetect_jsonc(t *testing.T) {
	const doc = `{
  // the hook runs before every request
  "hook": "ctx => ctx.next()", /* inline */
  "retries": 3,
}`
	start, end := valueSpan(t, doc, `"ctx => ctx.next()"`)
	info := block.Detect(doc, start+3)
	if info == nil {
		t.Fatal("Detect: got nil")
	}
	want := &block.CodeBlockInfo{
		Code:      "ctx => ctx.next()",
		Start:     start,
		End:       end,
		FieldName: "hook",
		KeyPath:   "hook",
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("Detect: (-want, +got)\n%s", diff)
	}
}

func TestDetect_escapes(t *testing.T) {
	tests := []struct {
		literal string // source form of the value, with quotes
		code    string // expected unescaped code
	}{
		{`"Hello\nWorld"`, "Hello\nWorld"},
		{`"\d+"`, `d+`}, // catch-all drops the backslash; see the escape package
		{`"a\tb \x41 \101"`, "a\tb A A"},
		{`"quote: \" done"`, `quote: " done"`},
	}
	for _, test := range tests {
		doc := fmt.Sprintf(`{"value": %s}`, test.literal)
		start, end := valueSpan(t, doc, test.literal)
		info := block.Detect(doc, start)
		if info == nil {
			t.Fatalf("Detect in %s: got nil", test.literal)
		}
		if info.Code != test.code {
			t.Errorf("Detect in %s: code %#q, want %#q", test.literal, info.Code, test.code)
		}
		if info.Start != start || info.End != end {
			t.Errorf("Detect in %s: span %d-%d, want %d-%d", test.literal, info.Start, info.End, start, end)
		}
	}
}

func TestDetect_emptyString(t *testing.T) {
	const doc = `{"empty": ""}`
	start, end := valueSpan(t, doc, `""`)
	if start != end {
		t.Fatalf("empty literal has span %d-%d", start, end)
	}
	info := block.Detect(doc, start)
	if info == nil {
		t.Fatal("Detect: got nil")
	}
	if info.Code != "" || info.Start != start || info.End != end {
		t.Errorf("Detect: got %+v", info)
	}
}

func TestDetect_truncatedDocument(t *testing.T) {
	// Missing closing braces: the structural walk still sees the complete
	// prefix, so nesting is preserved.
	const doc = `{"config": {"adaptor": "function test(){ return 1; }"`
	start, _ := valueSpan(t, doc, `"function test(){ return 1; }"`)
	info := block.Detect(doc, start+5)
	if info == nil {
		t.Fatal("Detect: got nil")
	}
	if info.FieldName != "adaptor" {
		t.Errorf("field: got %q, want %q", info.FieldName, "adaptor")
	}
	if info.KeyPath != "config.adaptor" {
		t.Errorf("path: got %q, want %q", info.KeyPath, "config.adaptor")
	}
	if want := "function test(){ return 1; }"; info.Code != want {
		t.Errorf("code: got %#q, want %#q", info.Code, want)
	}
}

func TestDetect_fallback(t *testing.T) {
	// Damaged beyond structural recovery: leading garbage kills the parse
	// before any candidate is recorded, and the raw-text scan takes over.
	const doc = `}} "adaptor": "function test(){ return 1; }" {{`
	start, end := valueSpan(t, doc, `"function test(){ return 1; }"`)

	for _, offset := range []int{start, start + 7, end} {
		info := block.Detect(doc, offset)
		if info == nil {
			t.Fatalf("Detect(%d): got nil", offset)
		}
		if info.FieldName != "adaptor" || info.KeyPath != "adaptor" {
			t.Errorf("Detect(%d): got (%q, %q), want (adaptor, adaptor)", offset, info.FieldName, info.KeyPath)
		}
		if info.Start != start || info.End != end {
			t.Errorf("Detect(%d): span %d-%d, want %d-%d", offset, info.Start, info.End, start, end)
		}
		if want := "function test(){ return 1; }"; info.Code != want {
			t.Errorf("Detect(%d): code %#q, want %#q", offset, info.Code, want)
		}
	}

	t.Run("NoFieldName", func(t *testing.T) {
		const doc = `]] "just a string"`
		start, _ := valueSpan(t, doc, `"just a string"`)
		if info := block.Detect(doc, start); info != nil {
			t.Errorf("Detect: got %+v, want nil", info)
		}
	})

	t.Run("OutsideStrings", func(t *testing.T) {
		const doc = `}} "adaptor": "code"`
		if info := block.Detect(doc, 0); info != nil {
			t.Errorf("Detect: got %+v, want nil", info)
		}
	})

	t.Run("EscapedName", func(t *testing.T) {
		const doc = `}} "field\"x": "code here"`
		start, _ := valueSpan(t, doc, `"code here"`)
		info := block.Detect(doc, start)
		if info == nil {
			t.Fatal("Detect: got nil")
		}
		if info.FieldName != `field"x` {
			t.Errorf("field: got %q, want %q", info.FieldName, `field"x`)
		}
	})
}

func TestDetect_concurrent(t *testing.T) {
	const doc = `{"a": {"x": "alpha"}, "b": "beta"}`
	startA, _ := valueSpan(t, doc, `"alpha"`)
	startB, _ := valueSpan(t, doc, `"beta"`)

	d := block.New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if info := d.Detect(doc, startA); info == nil || info.KeyPath != "a.x" {
					t.Errorf("Detect(alpha): got %+v", info)
					return
				}
				if info := d.Detect(doc, startB); info == nil || info.KeyPath != "b" {
					t.Errorf("Detect(beta): got %+v", info)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

// captureLogger counts messages per level so tests can observe detector
// diagnostics.
type captureLogger struct {
	mu                         sync.Mutex
	debug, info, warn, errored int
}

func (c *captureLogger) Debugf(string, ...any) { c.mu.Lock(); c.debug++; c.mu.Unlock() }
func (c *captureLogger) Infof(string, ...any)  { c.mu.Lock(); c.info++; c.mu.Unlock() }
func (c *captureLogger) Warnf(string, ...any)  { c.mu.Lock(); c.warn++; c.mu.Unlock() }
func (c *captureLogger) Errorf(string, ...any) { c.mu.Lock(); c.errored++; c.mu.Unlock() }

func TestDetect_logsFallback(t *testing.T) {
	lg := new(captureLogger)
	d := block.New(block.WithLogger(lg))

	const doc = `}} "adaptor": "code"`
	start, _ := valueSpan(t, doc, `"code"`)
	if info := d.Detect(doc, start); info == nil {
		t.Fatal("Detect: got nil")
	}
	if lg.debug == 0 {
		t.Error("fallback produced no debug diagnostics")
	}
	if lg.errored != 0 {
		t.Errorf("fallback produced %d error diagnostics, want 0", lg.errored)
	}
}

func BenchmarkDetect(b *testing.B) {
	var sb strings.Builder
	sb.WriteString(`{"items": {`)
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&sb, `"field%d": "value %d with some text",`, i, i)
	}
	sb.WriteString(`"target": "function test(){ return 1; }"}}`)
	doc := sb.String()
	offset := strings.Index(doc, "return")

	d := block.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if d.Detect(doc, offset) == nil {
			b.Fatal("no detection")
		}
	}
}
