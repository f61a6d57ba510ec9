// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package document

import (
	"strings"
	"unicode/utf8"
)

// Document is an immutable view of one text document.
// It is built fresh for every request and never shared between requests.
type Document struct {
	URI   string
	Text  string
	lines []string
}

// New creates a document from raw text.
func New(uri, text string) *Document {
	return &Document{
		URI:   uri,
		Text:  text,
		lines: strings.Split(text, "\n"),
	}
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of the zero-based line i, without the trailing newline.
// Out-of-range lines return the empty string.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}

	return d.lines[i]
}

// OffsetAt converts a position to a byte offset into the document text.
// Positions past the end of a line or of the document clamp to the nearest
// valid offset.
func (d *Document) OffsetAt(p Position) int {
	if p.Line < 0 {
		return 0
	}

	offset := 0

	for i := 0; i < p.Line && i < len(d.lines); i++ {
		offset += len(d.lines[i]) + 1 // +1 for the newline
	}

	if p.Line >= len(d.lines) {
		return len(d.Text)
	}

	return offset + byteColumn(d.lines[p.Line], p.Character)
}

// PositionAt converts a byte offset into a position.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		return Position{}
	}

	remaining := offset

	for i, line := range d.lines {
		if remaining <= len(line) {
			return Position{Line: i, Character: utf16Column(line, remaining)}
		}

		remaining -= len(line) + 1
	}

	last := len(d.lines) - 1

	return Position{Line: last, Character: utf16Column(d.lines[last], len(d.lines[last]))}
}

// GetText extracts the substring covered by the given range.
func (d *Document) GetText(r Range) string {
	start := d.OffsetAt(r.Start)
	end := d.OffsetAt(r.End)

	if start > end {
		return ""
	}

	return d.Text[start:end]
}

// RuneBefore returns the rune immediately preceding the position,
// or zero when the position is at the start of the document.
func (d *Document) RuneBefore(p Position) rune {
	offset := d.OffsetAt(p)
	if offset == 0 {
		return 0
	}

	r, _ := utf8.DecodeLastRuneInString(d.Text[:offset])

	return r
}

// PositionFromRuneColumn converts a zero-based line and a zero-based rune
// column into a position with a UTF-16 character offset. The underlying
// parser reports columns in runes, so token ranges pass through here.
func (d *Document) PositionFromRuneColumn(line, runeCol int) Position {
	text := d.Line(line)
	char := 0

	for _, r := range text {
		if runeCol <= 0 {
			break
		}

		char += utf16Len(r)
		runeCol--
	}

	return Position{Line: line, Character: char}
}

// LineLength returns the length of the zero-based line i in UTF-16 code units.
func (d *Document) LineLength(i int) int {
	line := d.Line(i)

	return utf16Column(line, len(line))
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	u := 0

	for _, r := range s {
		u += utf16Len(r)
	}

	return u
}

// byteColumn converts a UTF-16 character offset into a byte index within line.
func byteColumn(line string, character int) int {
	u := 0

	for i, r := range line {
		if u >= character {
			return i
		}

		u += utf16Len(r)
	}

	return len(line)
}

// utf16Column converts a byte index within line into a UTF-16 character offset.
func utf16Column(line string, byteIdx int) int {
	u := 0

	for i, r := range line {
		if i >= byteIdx {
			break
		}

		u += utf16Len(r)
	}

	return u
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}

	return 1
}
