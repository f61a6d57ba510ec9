// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package langserver

import (
	"encoding/json"

	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/validate"
)

// Message is a JSON-RPC request or notification.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// ResponseMessage is a JSON-RPC response; the result field is always present.
type ResponseMessage struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result"`
}

// ErrorResponseMessage is a JSON-RPC error response.
type ErrorResponseMessage struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      any            `json:"id"`
	Error   *ResponseError `json:"error"`
}

// ResponseError is the error member of an error response.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC error codes used by this server.
const (
	ErrorCodeInvalidParams = -32602
)

// NotificationMessage is a JSON-RPC notification sent by the server.
type NotificationMessage struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// TextDocumentItem is an open text document.
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

// TextDocumentIdentifier identifies a text document.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// DidOpenParams are the parameters of textDocument/didOpen.
type DidOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// ContentChange is one change of textDocument/didChange: incremental when
// Range is present, a full-document replacement otherwise.
type ContentChange struct {
	Range *document.Range `json:"range,omitempty"`
	Text  string          `json:"text"`
}

// DidChangeParams are the parameters of textDocument/didChange.
type DidChangeParams struct {
	TextDocument   TextDocumentIdentifier `json:"textDocument"`
	ContentChanges []ContentChange        `json:"contentChanges"`
}

// DidCloseParams are the parameters of textDocument/didClose.
type DidCloseParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// PositionParams are the parameters of position-based requests.
type PositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     document.Position      `json:"position"`
}

// TextEdit replaces a span of the document with new text.
type TextEdit struct {
	Range   document.Range `json:"range"`
	NewText string         `json:"newText"`
}

// CompletionItem is one completion suggestion in protocol shape.
type CompletionItem struct {
	Label         string    `json:"label"`
	Kind          int       `json:"kind,omitempty"`
	Documentation string    `json:"documentation,omitempty"`
	TextEdit      *TextEdit `json:"textEdit,omitempty"`
}

// Completion item kinds used by this server.
const (
	CompletionItemKindProperty = 10
	CompletionItemKindValue    = 12
)

// MarkupContent is protocol markup, always markdown here.
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Hover is the result of textDocument/hover.
type Hover struct {
	Contents MarkupContent   `json:"contents"`
	Range    *document.Range `json:"range,omitempty"`
}

// PublishDiagnosticsParams notify the client of the document's diagnostics.
type PublishDiagnosticsParams struct {
	URI         string                `json:"uri"`
	Diagnostics []validate.Diagnostic `json:"diagnostics"`
}
