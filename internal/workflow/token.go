// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workflow

import (
	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/schema"
)

// Kind discriminates the token variants.
type Kind int

// Token variants.
const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Entry is one key/value pair of a mapping token.
// Value is nil only for malformed input the parser could not recover;
// a key typed without a value yields an empty scalar instead.
type Entry struct {
	Key   *Token
	Value *Token
}

// Token is a node of the parsed document tree. Tokens are read-only and
// owned by the parse result for the lifetime of one request.
type Token struct {
	Kind       Kind
	Value      string  // scalar text as written
	Items      []*Token // sequence entries
	Entries    []Entry  // mapping entries, in document order
	Range      *document.Range
	Definition *schema.Definition
}

// IsScalar reports whether the token is a scalar.
func (t *Token) IsScalar() bool {
	return t != nil && t.Kind == KindScalar
}

// Entry returns the value token for the named mapping key, or nil.
func (t *Token) Entry(key string) *Token {
	if t == nil || t.Kind != KindMapping {
		return nil
	}

	for _, e := range t.Entries {
		if e.Key != nil && e.Key.Value == key {
			return e.Value
		}
	}

	return nil
}

// Keys returns the key names declared in a mapping token, in document order.
func (t *Token) Keys() []string {
	if t == nil || t.Kind != KindMapping {
		return nil
	}

	keys := make([]string, 0, len(t.Entries))

	for _, e := range t.Entries {
		if e.Key != nil {
			keys = append(keys, e.Key.Value)
		}
	}

	return keys
}

// Contains reports whether the token's range contains the position.
// Tokens without a range never contain anything.
func (t *Token) Contains(p document.Position) bool {
	return t != nil && t.Range != nil && t.Range.Contains(p)
}
