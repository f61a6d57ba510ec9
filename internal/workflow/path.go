// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workflow

import (
	"strconv"
	"strings"
)

// Segment is one step of a path from the document root: either a property
// name or a sequence index.
type Segment struct {
	Name  string
	Index int
}

// Property creates a property-name segment.
func Property(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// Index creates a sequence-index segment.
func Index(i int) Segment {
	return Segment{Index: i}
}

// IsIndex reports whether the segment is a sequence index.
func (s Segment) IsIndex() bool {
	return s.Name == ""
}

// Path is the ordered list of segments from the document root to a token.
type Path []Segment

// String renders the path in dotted form, e.g. "jobs.build.steps[0].run".
func (p Path) String() string {
	sb := strings.Builder{}

	for _, s := range p {
		if s.IsIndex() {
			sb.WriteString("[")
			sb.WriteString(strconv.Itoa(s.Index))
			sb.WriteString("]")

			continue
		}

		if sb.Len() > 0 {
			sb.WriteString(".")
		}

		sb.WriteString(s.Name)
	}

	return sb.String()
}
