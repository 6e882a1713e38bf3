// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/jsonedit/jcode/internal/escape"
	"go4.org/mem"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		input string // escaped content, quotes removed
		want  string // decoded text
	}{
		// No escapes: input passes through.
		{``, ``},
		{`plain text`, `plain text`},
		{`function test(){ return 1; }`, `function test(){ return 1; }`},

		// Standard JSON escapes.
		{`\"`, `"`},
		{`\\`, `\`},
		{`\/`, `/`},
		{`\b\f\n\r\t`, "\b\f\n\r\t"},
		{`Hello\nWorld`, "Hello\nWorld"},

		// Unicode escapes.
		{`\u0041`, "A"},
		{`\u00e9`, "é"},
		{`\u2603`, "☃"},
		{`a \u0026 b`, "a & b"},

		// Hex escapes.
		{`\x41`, "A"},
		{`\x7f`, "\x7f"},
		{`\xE9`, "é"}, // code-unit conversion, not a raw byte

		// Octal escapes, 1 to 3 digits.
		{`\0`, "\x00"},
		{`\7`, "\x07"},
		{`\101`, "A"},
		{`\12after`, "\nafter"},
		{`\1018`, "A8"}, // fourth digit is not consumed

		// Malformed numeric escapes pass through unchanged.
		{`\u00`, `\u00`},
		{`\uzzzz`, `\uzzzz`},
		{`\u123`, `\u123`},
		{`\x`, `\x`},
		{`\xg1`, `\xg1`},

		// Catch-all: the backslash is dropped, the character kept. This
		// flattens regex escapes like \d and \s.
		{`\d+`, `d+`},
		{`\s\w\d`, `swd`},
		{`\q`, `q`},
		{`\é`, "\xc3\xa9"}, // multibyte char after backslash survives intact

		// A lone trailing backslash passes through.
		{`abc\`, `abc\`},

		// Mixtures.
		{`line1\nline2\tend`, "line1\nline2\tend"},
		{`\\n`, `\n`},
		{`\\\n`, "\\\n"},
		{`say \"hi\"`, `say "hi"`},
	}
	for _, test := range tests {
		got := string(escape.Unescape(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Unescape(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestQuoteIsStandard(t *testing.T) {
	// Quote must never emit the nonstandard escapes Unescape accepts.
	tests := []struct {
		input string
		want  string
	}{
		{"\x00", `"\u0000"`},    // not \0
		{"A", `"A"`},              // not \x41
		{"d+", `"d+"`},            // catch-all never reverses
		{"a\nb", `"a\nb"`},        // standard short escape
		{`back\slash`, `"back\\slash"`},
	}
	for _, test := range tests {
		got := string(escape.Quote(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Quote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}
