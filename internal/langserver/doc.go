// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package langserver implements a language server for workflow YAML files
// over stdio, speaking JSON-RPC with Content-Length framing. It wires the
// completion and validation engines to textDocument requests and keeps an
// in-memory store of open documents. All logging goes to the context logger,
// which callers must point away from stdout to keep the protocol stream
// clean.
package langserver
