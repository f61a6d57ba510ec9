// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workflow parses workflow YAML documents into a token tree and
// exposes the ambient document context used by value and context providers.
//
// The tree is tolerant of in-progress edits: a mapping key without a value
// yields an entry with an empty scalar, and a parse failure triggered by a
// half-typed key is retried with the cursor line patched. Every token range
// is translated from the parser's 1-based coordinates into the 0-based
// UTF-16 coordinates of the input document.
package workflow
