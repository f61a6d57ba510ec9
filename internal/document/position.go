// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package document

// Position is a zero-based location in a text document.
// Character offsets are counted in UTF-16 code units.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Before reports whether p is strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}

	return p.Character < q.Character
}

// Contains reports whether the range contains the given position.
// The end position is included so that a cursor sitting immediately
// after the last character of a token still resolves to that token.
func (r Range) Contains(p Position) bool {
	return !p.Before(r.Start) && !r.End.Before(p)
}

// Empty reports whether the range spans no characters.
func (r Range) Empty() bool {
	return r.Start == r.End
}
