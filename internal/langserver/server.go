// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package langserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/matt-FFFFFF/flowls"
	"github.com/matt-FFFFFF/flowls/internal/completion"
	"github.com/matt-FFFFFF/flowls/internal/ctxlog"
	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/providers"
	"github.com/matt-FFFFFF/flowls/internal/validate"
	"github.com/matt-FFFFFF/flowls/internal/workflow"
)

var (
	// ErrNoContentLength is returned when a message arrives without a Content-Length header.
	ErrNoContentLength = errors.New("no content length specified")
	// ErrWriteMessage is returned when a message cannot be written to the client.
	ErrWriteMessage = errors.New("failed to write message")
)

const contentLengthHeader = "Content-Length: "

// Server is a stdio language server for workflow YAML files.
type Server struct {
	mu               sync.RWMutex
	documents        map[string]string
	reader           *bufio.Reader
	writer           io.Writer
	valueProviders   providers.ValueProviders
	contextProviders providers.ContextProviders
}

// Option configures a server.
type Option func(*Server)

// WithValueProviders overrides completion value sources per schema key.
func WithValueProviders(vp providers.ValueProviders) Option {
	return func(s *Server) {
		s.valueProviders = vp
	}
}

// WithContextProviders overrides the expression context sources.
func WithContextProviders(cp providers.ContextProviders) Option {
	return func(s *Server) {
		s.contextProviders = cp
	}
}

// New creates a server reading requests from r and writing responses to w.
func New(r io.Reader, w io.Writer, opts ...Option) *Server {
	s := &Server{
		documents: make(map[string]string),
		reader:    bufio.NewReader(r),
		writer:    w,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run processes messages until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctxlog.Info(ctx, "language server started", "version", flowls.Version)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			err := s.handleMessage(ctx)
			if errors.Is(err, io.EOF) {
				ctxlog.Info(ctx, "client disconnected")

				return nil
			}

			if err != nil {
				ctxlog.Error(ctx, "failed to handle message", "error", err)
			}
		}
	}
}

// handleMessage reads and processes a single framed message.
func (s *Server) handleMessage(ctx context.Context) error {
	contentLength := 0

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return err
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		if rest, ok := strings.CutPrefix(line, contentLengthHeader); ok {
			if length, err := strconv.Atoi(rest); err == nil {
				contentLength = length
			}
		}
	}

	if contentLength == 0 {
		return ErrNoContentLength
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return err
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return err
	}

	ctxlog.Debug(ctx, "received message", "method", msg.Method)

	return s.processMessage(ctx, &msg)
}

func (s *Server) processMessage(ctx context.Context, msg *Message) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, msg)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, msg)
	case "textDocument/didClose":
		return s.handleDidClose(ctx, msg)
	case "textDocument/completion":
		return s.handleCompletion(ctx, msg)
	case "textDocument/hover":
		return s.handleHover(ctx, msg)
	case "shutdown":
		return s.sendResponse(msg.ID, nil)
	case "exit":
		return io.EOF
	default:
		ctxlog.Debug(ctx, "unhandled method", "method", msg.Method)

		return nil
	}
}

func (s *Server) handleInitialize(msg *Message) error {
	result := map[string]any{
		"capabilities": map[string]any{
			"textDocumentSync": map[string]any{
				"openClose": true,
				"change":    2, // incremental
			},
			"completionProvider": map[string]any{
				"triggerCharacters": []string{" ", ".", "-", "$", "{"},
			},
			"hoverProvider": true,
		},
		"serverInfo": map[string]any{
			"name":    "flowls",
			"version": flowls.Version,
		},
	}

	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleDidOpen(ctx context.Context, msg *Message) error {
	var params DidOpenParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		ctxlog.Debug(ctx, "invalid didOpen params", "error", err)

		return nil
	}

	s.mu.Lock()
	s.documents[params.TextDocument.URI] = params.TextDocument.Text
	s.mu.Unlock()

	return s.publishDiagnostics(ctx, params.TextDocument.URI)
}

func (s *Server) handleDidChange(ctx context.Context, msg *Message) error {
	var params DidChangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		ctxlog.Debug(ctx, "invalid didChange params", "error", err)

		return nil
	}

	uri := params.TextDocument.URI

	s.mu.RLock()
	text, exists := s.documents[uri]
	s.mu.RUnlock()

	if !exists {
		ctxlog.Debug(ctx, "change for unknown document", "uri", uri)

		return nil
	}

	for _, change := range params.ContentChanges {
		if change.Range == nil {
			text = change.Text

			continue
		}

		text = applyChange(text, *change.Range, change.Text)
	}

	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()

	return s.publishDiagnostics(ctx, uri)
}

func (s *Server) handleDidClose(ctx context.Context, msg *Message) error {
	var params DidCloseParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		ctxlog.Debug(ctx, "invalid didClose params", "error", err)

		return nil
	}

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	return nil
}

func (s *Server) handleCompletion(ctx context.Context, msg *Message) error {
	// Always a non-nil slice so the response marshals as [] rather than null.
	items := make([]CompletionItem, 0)

	var params PositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		ctxlog.Debug(ctx, "invalid completion params", "error", err)

		return s.sendError(msg.ID, ErrorCodeInvalidParams, "invalid completion params")
	}

	s.mu.RLock()
	text, exists := s.documents[params.TextDocument.URI]
	s.mu.RUnlock()

	if !exists {
		return s.sendResponse(msg.ID, items)
	}

	results := completion.Complete(ctx, completion.Request{
		URI:              params.TextDocument.URI,
		Text:             text,
		Position:         params.Position,
		ValueProviders:   s.valueProviders,
		ContextProviders: s.contextProviders,
	})

	for _, r := range results {
		kind := CompletionItemKindValue
		if r.Kind == completion.ItemKindKey {
			kind = CompletionItemKindProperty
		}

		item := CompletionItem{
			Label:         r.Label,
			Kind:          kind,
			Documentation: r.Description,
		}
		if r.Range != nil {
			item.TextEdit = &TextEdit{Range: *r.Range, NewText: r.Label}
		}

		items = append(items, item)
	}

	ctxlog.Debug(ctx, "completion computed", "uri", params.TextDocument.URI, "items", len(items))

	return s.sendResponse(msg.ID, items)
}

func (s *Server) handleHover(ctx context.Context, msg *Message) error {
	var params PositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		ctxlog.Debug(ctx, "invalid hover params", "error", err)

		return s.sendError(msg.ID, ErrorCodeInvalidParams, "invalid hover params")
	}

	s.mu.RLock()
	text, exists := s.documents[params.TextDocument.URI]
	s.mu.RUnlock()

	if !exists {
		return s.sendResponse(msg.ID, nil)
	}

	return s.sendResponse(msg.ID, s.hover(ctx, params.TextDocument.URI, text, params.Position))
}

// hover returns the schema description of the key under the cursor, or nil.
func (s *Server) hover(ctx context.Context, uri, text string, pos document.Position) *Hover {
	doc := document.New(uri, text)

	root, err := workflow.Parse(ctx, doc)
	if err != nil {
		return nil
	}

	res := completion.Resolve(pos, root)
	if res.Token == nil || res.KeyToken != nil || res.Token.Definition == nil {
		return nil
	}

	def := res.Token.Definition
	if def.Description == "" {
		return nil
	}

	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: fmt.Sprintf("**%s**\n\n%s", res.Token.Value, def.Description),
		},
		Range: res.Token.Range,
	}
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) error {
	s.mu.RLock()
	text, exists := s.documents[uri]
	s.mu.RUnlock()

	if !exists {
		return nil
	}

	diags := validate.Validate(ctx, validate.Request{
		URI:            uri,
		Text:           text,
		ValueProviders: s.valueProviders,
	})
	if diags == nil {
		diags = make([]validate.Diagnostic, 0)
	}

	return s.sendNotification("textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func (s *Server) sendResponse(id, result any) error {
	return s.sendMessage(ResponseMessage{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id any, code int, message string) error {
	return s.sendMessage(ErrorResponseMessage{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &ResponseError{Code: code, Message: message},
	})
}

func (s *Server) sendNotification(method string, params any) error {
	return s.sendMessage(NotificationMessage{JSONRPC: "2.0", Method: method, Params: params})
}

func (s *Server) sendMessage(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Join(ErrWriteMessage, err)
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))

	if _, err := io.WriteString(s.writer, header); err != nil {
		return errors.Join(ErrWriteMessage, err)
	}

	if _, err := s.writer.Write(data); err != nil {
		return errors.Join(ErrWriteMessage, err)
	}

	return nil
}

// applyChange splices an incremental edit into the document text.
func applyChange(text string, r document.Range, newText string) string {
	doc := document.New("", text)

	start := doc.OffsetAt(r.Start)
	end := doc.OffsetAt(r.End)

	if start > end {
		return text
	}

	return text[:start] + newText + text[end:]
}
