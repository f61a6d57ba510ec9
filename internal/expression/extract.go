// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package expression

import "strings"

const (
	openMarker  = "${{"
	closeMarker = "}}"
)

// Extract returns the interior of the expression enclosing the given offset
// within text. The offset is relative to the start of text.
//
// The nearest open marker before the offset and the nearest close marker
// after it bound the expression, so a scalar holding several expressions
// yields the innermost enclosing one. An unterminated expression is bounded
// by the end of the string, tolerating a half-typed edit such as "${{ foo.".
// When no enclosing open marker exists the full string is returned unchanged
// and the caller decides, via the token's schema definition, whether it is
// looking at expression content at all.
func Extract(text string, offset int) string {
	if offset < 0 {
		offset = 0
	}

	if offset > len(text) {
		offset = len(text)
	}

	open := strings.LastIndex(text[:offset], openMarker)
	if open < 0 {
		return text
	}

	// A close marker between the open marker and the offset means the cursor
	// sits after a complete expression, not inside one.
	if strings.Contains(text[open+len(openMarker):offset], closeMarker) {
		return text
	}

	end := len(text)
	if i := strings.Index(text[offset:], closeMarker); i >= 0 {
		end = offset + i
	}

	return text[open+len(openMarker) : end]
}

// Contains reports whether text holds an expression open marker.
func Contains(text string) bool {
	return strings.Contains(text, openMarker)
}
