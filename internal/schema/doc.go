// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema describes the workflow document format: which keys are legal
// where, which fields hold a closed set of literal values, and which string
// fields may embed ${{ ... }} expressions. The tables are constructed once at
// process start and are never mutated.
package schema
