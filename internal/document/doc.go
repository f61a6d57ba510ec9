// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package document provides position and range utilities for workflow text documents.
// Positions are zero-based and count characters in UTF-16 code units, as mandated by
// the language server protocol.
package document
