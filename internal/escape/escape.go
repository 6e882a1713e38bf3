// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

// Package escape converts between the escaped form used inside JSON string
// literals and plain text.
//
// Unescape is deliberately more forgiving than the JSON grammar: embedded
// code is routinely written by hand into configuration files, so in addition
// to the standard escapes it accepts \xXX hex and \ooo octal sequences, and
// it never fails. An escape it cannot make sense of passes through with the
// backslash dropped; a numeric escape with malformed digits passes through
// unchanged, backslash included.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// Unescape decodes a byte sequence containing the escaped content of a JSON
// string literal. The input must have the enclosing double quotation marks
// already removed. Unescape is total: it cannot fail, and for input with no
// backslashes it returns the input bytes unchanged.
func Unescape(src mem.RO) []byte {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(nil, src)
	}

	dec := make([]byte, 0, src.Len())
	putRune := func(r rune) {
		var buf [6]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}
	for {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			// A lone backslash at the end of input passes through.
			dec = append(dec, '\\')
			break
		}

		ch := src.At(0)
		src = src.SliceFrom(1)
		switch {
		case ch == '"' || ch == '\\' || ch == '/':
			dec = append(dec, ch)
		case ch == 'b':
			dec = append(dec, '\b')
		case ch == 'f':
			dec = append(dec, '\f')
		case ch == 'n':
			dec = append(dec, '\n')
		case ch == 'r':
			dec = append(dec, '\r')
		case ch == 't':
			dec = append(dec, '\t')
		case ch == 'u':
			if v, ok := parseHex(src, 4); ok {
				putRune(rune(v))
				src = src.SliceFrom(4)
			} else {
				dec = append(dec, '\\', 'u')
			}
		case ch == 'x':
			if v, ok := parseHex(src, 2); ok {
				putRune(rune(v))
				src = src.SliceFrom(2)
			} else {
				dec = append(dec, '\\', 'x')
			}
		case ch >= '0' && ch <= '7':
			// Octal escape: 1 to 3 digits including the one already read.
			v := int64(ch - '0')
			for n := 0; n < 2 && src.Len() > 0; n++ {
				d := src.At(0)
				if d < '0' || d > '7' {
					break
				}
				v = v<<3 + int64(d-'0')
				src = src.SliceFrom(1)
			}
			putRune(rune(v))
		default:
			// Unrecognized escape: drop the backslash, keep the character.
			// Note this mutates regex-ish content such as \d or \s that is
			// common in embedded pattern strings; the behavior is pinned by
			// tests, so change it deliberately if that ever matters.
			dec = append(dec, ch)
		}

		// Look for the next escape sequence, and if one is not found we can
		// blit the rest of the input and go home.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec
}

// parseHex decodes exactly n hex digits from the front of data. It reports
// false if data is too short or a non-hex digit intervenes.
func parseHex(data mem.RO, n int) (int64, bool) {
	if data.Len() < n {
		return 0, false
	}
	var v int64
	for i := 0; i < n; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as a JSON string literal, escaping characters as needed
// and adding the enclosing double quotation marks. Quote emits only escapes
// from the standard JSON grammar, so its output survives any JSON decoder,
// not just Unescape.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = append(buf, '\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' {
				buf = append(buf, '\\', byte(r))
			} else {
				buf = append(buf, byte(r))
			}
			src = src.SliceFrom(n)
			continue
		}

		switch r {
		case '\ufffd': // replacement rune
			buf = append(buf, `\ufffd`...)
		case '\u2028': // line separator
			buf = append(buf, `\u2028`...)
		case '\u2029': // paragraph separator
			buf = append(buf, `\u2029`...)
		default:
			var rbuf [6]byte
			n := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:n]...)
		}
		src = src.SliceFrom(n)
	}
	return append(buf, '"')
}
