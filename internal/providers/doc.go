// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package providers supplies pluggable sources of completion values.
//
// A value provider is keyed by a schema field name and returns the legal
// values for that field, possibly derived from the ambient document context
// or from live environment data. A context provider is keyed by an
// expression context name (github, env, needs, ...) and returns the members
// of that context. The default tables are built once at process start and
// are never mutated; callers substitute overrides per request.
package providers
