// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package completion

import (
	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/workflow"
)

// Resolution is the cursor context within a token tree.
//
// Token is the deepest token containing the cursor; it is nil when the
// cursor sits on whitespace inside Parent, which callers must read as
// "completing a new entry in Parent", not as an error. KeyToken is the
// mapping key owning the resolved value; it is nil when Token itself is a
// mapping key. Path lists the property names and indexes traversed from the
// document root.
type Resolution struct {
	Token    *workflow.Token
	KeyToken *workflow.Token
	Parent   *workflow.Token
	Path     workflow.Path
}

// Resolve walks the token tree and locates the cursor context for pos.
// The tree may be structurally incomplete; tokens without ranges are
// skipped, and when no child contains the cursor the deepest container
// reached becomes the parent of a nil token.
func Resolve(pos document.Position, root *workflow.Token) Resolution {
	if root == nil {
		return Resolution{}
	}

	cur := root

	var keyToken *workflow.Token

	var path workflow.Path

descend:
	for {
		switch cur.Kind {
		case workflow.KindMapping:
			for _, e := range cur.Entries {
				if e.Key.Contains(pos) {
					return Resolution{Token: e.Key, Parent: cur, Path: path}
				}

				if !e.Value.Contains(pos) {
					continue
				}

				path = append(path, workflow.Property(e.Key.Value))

				if e.Value.Kind == workflow.KindScalar {
					return Resolution{Token: e.Value, KeyToken: e.Key, Parent: cur, Path: path}
				}

				keyToken = e.Key
				cur = e.Value

				continue descend
			}

			return Resolution{KeyToken: keyToken, Parent: cur, Path: path}
		case workflow.KindSequence:
			for i, item := range cur.Items {
				if !item.Contains(pos) {
					continue
				}

				path = append(path, workflow.Index(i))

				if item.Kind == workflow.KindScalar {
					return Resolution{Token: item, KeyToken: keyToken, Parent: cur, Path: path}
				}

				cur = item

				continue descend
			}

			return Resolution{KeyToken: keyToken, Parent: cur, Path: path}
		default:
			return Resolution{Token: cur, KeyToken: keyToken, Path: path}
		}
	}
}
