// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package jcode

import (
	"errors"
	"strings"

	"github.com/jsonedit/jcode/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unescape decodes the content of a JSON string value, with the enclosing
// quotation marks already removed. Escape sequences are replaced with their
// unescaped equivalents.
//
// Unescape is total. Beyond the standard JSON escapes it accepts \xXX hex
// and \ooo octal sequences; a numeric escape with malformed digits passes
// through unchanged, and any other unrecognized escape drops the backslash
// and keeps the character that followed it.
func Unescape(src string) string { return string(escape.Unescape(mem.S(src))) }

// Unquote decodes a JSON string value. Double quotation marks are removed
// and the contents are decoded as by Unescape. It reports an error only if
// the enclosing quotation marks are missing.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	return Unescape(src[1 : len(src)-1]), nil
}
