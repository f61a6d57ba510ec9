// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package expression locates ${{ ... }} spans inside scalar values and
// completes the expression sub-language: context roots, built-in functions,
// and the members of a known context.
package expression
