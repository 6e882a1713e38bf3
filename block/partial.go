// Copyright (C) 2025 The jcode Authors. All Rights Reserved.

package block

import (
	"regexp"

	"github.com/jsonedit/jcode"
)

var (
	// stringRE matches a complete double-quoted string literal, skipping
	// escaped quotes.
	stringRE = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)

	// fieldRE matches a quoted property name followed by a colon at the end
	// of its input, i.e. immediately before a value.
	fieldRE = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"\s*:\s*$`)
)

// scanPartial recovers a detection from a document too damaged for the
// structural walk. It scans the raw text for string literals left to right;
// for the literal containing the offset it looks backward for a preceding
// "name": pattern to recover the field name. Nesting cannot be reconstructed
// reliably here, so the key path is just the bare field name. Without a
// preceding field name there is no detection.
func (d *Detector) scanPartial(text string, offset int) *CodeBlockInfo {
	for _, m := range stringRE.FindAllStringIndex(text, -1) {
		start, end := m[0]+1, m[1]-1 // content bounds, quotes excluded
		if offset < start || offset > end {
			continue
		}
		fm := fieldRE.FindStringSubmatch(text[:m[0]])
		if fm == nil {
			d.logger().Debugf("partial scan: string at %d-%d has no preceding field name", start, end)
			return nil
		}
		name := jcode.Unescape(fm[1])
		return &CodeBlockInfo{
			Code:      jcode.Unescape(text[start:end]),
			Start:     start,
			End:       end,
			FieldName: name,
			KeyPath:   name,
		}
	}
	return nil
}
