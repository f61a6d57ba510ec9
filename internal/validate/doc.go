// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package validate checks workflow documents against the schema and maps
// the findings onto document coordinates as diagnostics.
//
// Enumeration mismatches are re-checked against a caller-configured dynamic
// value provider before being reported: a value the static schema does not
// know but a permissive provider accepts is not a defect. Validation is
// advisory; an unparseable document yields no diagnostics rather than an
// error.
package validate
