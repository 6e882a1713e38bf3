// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

// Package keypath handles the dotted key paths shared by the code-block
// detector and the write-back path in the session package.
//
// A key path is the chain of object property names from the document root to
// a value, joined with ".". Array elements contribute no segment, so two
// elements of the same array are not distinguishable by path; this matches
// the detector's output and is a deliberate limitation, not an oversight.
// Property names containing a literal "." are likewise ambiguous once
// joined. Both sides of the write-back contract must use this package so
// they cannot disagree on these points.
package keypath

import "strings"

// Join joins a chain of property names into a dotted key path.
func Join(names []string) string { return strings.Join(names, ".") }

// Split splits a dotted key path into its property names. Splitting the
// empty path yields nil.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Base returns the final property name of the path, or "" for the empty
// path.
func Base(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
