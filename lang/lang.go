// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

// Package lang guesses the language of a code fragment found in a JSON
// document. It is a best-effort heuristic classifier, not a parser: the
// owning field name is consulted first, then a handful of content probes.
// Callers must treat an empty result as "unknown" and fall back to whatever
// default suits them.
package lang

import (
	"regexp"
	"slices"
	"strings"
)

// fieldHints maps substrings of a lowercased field name to a language.
// Order matters: more specific hints come first.
var fieldHints = []struct {
	hint, language string
}{
	{"javascript", "javascript"},
	{"typescript", "typescript"},
	{"jsx", "javascriptreact"},
	{"tsx", "typescriptreact"},
	{"sql", "sql"},
	{"html", "html"},
	{"css", "css"},
	{"markdown", "markdown"},
	{"yaml", "yaml"},
	{"xml", "xml"},
	{"python", "python"},
	{"shell", "shellscript"},
	{"bash", "shellscript"},
	{"script", "javascript"},
	{"query", "sql"},
	{"regex", "regexp"},
	{"pattern", "regexp"},
	{"template", "html"},
	{"cmd", "shellscript"},
	{"js", "javascript"},
	{"ts", "typescript"},
}

// contentProbes pair a pattern with the language it suggests. Probes run in
// order against the fragment and the first match wins.
var contentProbes = []struct {
	re       *regexp.Regexp
	language string
}{
	{regexp.MustCompile(`^#!\s*/.*\b(?:sh|bash|zsh)\b`), "shellscript"},
	{regexp.MustCompile(`(?i)\bselect\b.+\bfrom\b`), "sql"},
	{regexp.MustCompile(`(?i)\b(?:insert\s+into|update\s+\w+\s+set|delete\s+from)\b`), "sql"},
	{regexp.MustCompile(`^\s*<[!?]?[a-zA-Z]`), "html"},
	{regexp.MustCompile(`\bfunction\b\s*\w*\s*\(|=>\s*[{(]|\bconst\b|\blet\b`), "javascript"},
	{regexp.MustCompile(`\bdef\s+\w+\s*\(|\bimport\s+\w+\s*$|\blambda\b\s*\w*:`), "python"},
	{regexp.MustCompile(`\bfunc\s+\w+\s*\(|:=`), "go"},
	{regexp.MustCompile(`^\s*[.#]?[\w-]+\s*\{[^}]*:[^}]*\}`), "css"},
}

// Classify guesses the language of code found under the given field name.
// It returns an editor-style language identifier such as "javascript", or
// "" when no heuristic applies.
func Classify(fieldName, code string) string {
	name := strings.ToLower(fieldName)
	segs := splitName(fieldName)
	for _, h := range fieldHints {
		// Short hints only match a whole word of the field name, so that
		// "json" does not read as "js" nor "tests" as "ts".
		if len(h.hint) <= 3 {
			if slices.Contains(segs, h.hint) {
				return h.language
			}
		} else if strings.Contains(name, h.hint) {
			return h.language
		}
	}
	for _, p := range contentProbes {
		if p.re.MatchString(code) {
			return p.language
		}
	}
	return ""
}

// splitName breaks a field name into lowercase words at case changes and
// punctuation, so "queryJS" and "query_js" both yield ["query", "js"].
func splitName(name string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	prevLower := false
	for _, r := range name {
		switch {
		case 'A' <= r && r <= 'Z':
			if prevLower {
				flush()
			}
			cur.WriteRune(r - 'A' + 'a')
			prevLower = false
		case 'a' <= r && r <= 'z' || '0' <= r && r <= '9':
			cur.WriteRune(r)
			prevLower = 'a' <= r && r <= 'z'
		default:
			flush()
			prevLower = false
		}
	}
	flush()
	return words
}
