// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package completion derives completion candidates for a cursor position in
// a workflow document.
//
// The engine resolves which token, owning key, parent container and path the
// cursor belongs to, chooses candidate values from competing sources in a
// defined precedence order, excludes values already present as siblings, and
// computes the exact replacement span. The document being edited is often
// incomplete or invalid; every step degrades to "no suggestions" rather than
// failing.
package completion
