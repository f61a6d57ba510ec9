// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workflow

import (
	"context"
	"errors"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/matt-FFFFFF/flowls/internal/ctxlog"
	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/schema"
)

var (
	// ErrParse is returned when the document cannot be parsed.
	ErrParse = errors.New("failed to parse workflow document")
	// ErrEmptyDocument is returned when the document contains no content.
	ErrEmptyDocument = errors.New("document is empty")
)

// Parse converts the document into a token tree with schema definitions
// attached. Token ranges are 0-based UTF-16 document coordinates.
func Parse(ctx context.Context, doc *document.Document) (*Token, error) {
	f, err := parser.ParseBytes([]byte(doc.Text), 0)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	if len(f.Docs) == 0 || f.Docs[0].Body == nil {
		return nil, ErrEmptyDocument
	}

	c := &converter{doc: doc}

	root := c.node(f.Docs[0].Body, schema.Workflow())
	if root == nil {
		return nil, ErrEmptyDocument
	}

	ctxlog.Debug(ctx, "parsed workflow document", "uri", doc.URI, "kind", root.Kind.String())

	return root, nil
}

// ParseForPosition parses the document while tolerating the in-progress edit
// at pos. A parse failure caused by a half-typed key (a bare word with no
// separator yet) is retried with the cursor line patched by appending ":".
// The patch only appends at the end of the line, so token positions in the
// result need no translation back to the input document.
func ParseForPosition(ctx context.Context, doc *document.Document, pos document.Position) (*Token, error) {
	root, err := Parse(ctx, doc)
	if err == nil {
		return root, nil
	}

	line := doc.Line(pos.Line)
	if strings.TrimSpace(line) == "" || strings.Contains(line, ":") {
		return nil, err
	}

	lines := make([]string, doc.LineCount())
	for i := range lines {
		lines[i] = doc.Line(i)
	}

	lines[pos.Line] += ":"

	patched := document.New(doc.URI, strings.Join(lines, "\n"))

	root, retryErr := Parse(ctx, patched)
	if retryErr != nil {
		ctxlog.Debug(ctx, "tolerant reparse failed", "uri", doc.URI, "error", retryErr)

		return nil, err
	}

	return root, nil
}

// converter builds tokens from the YAML AST, attaching definitions and
// translating the parser's 1-based line/column numbering to 0-based
// document positions.
type converter struct {
	doc *document.Document
}

func (c *converter) node(n ast.Node, def *schema.Definition) *Token {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case ast.MappingType:
		return c.mapping(n.(*ast.MappingNode).Values, def)
	case ast.MappingValueType:
		return c.mapping([]*ast.MappingValueNode{n.(*ast.MappingValueNode)}, def)
	case ast.SequenceType:
		return c.sequence(n.(*ast.SequenceNode), def)
	case ast.AnchorType:
		return c.node(n.(*ast.AnchorNode).Value, def)
	case ast.TagType:
		return c.node(n.(*ast.TagNode).Value, def)
	case ast.NullType, ast.CommentType, ast.CommentGroupType, ast.DirectiveType:
		return nil
	default:
		return c.scalar(n, def)
	}
}

func (c *converter) mapping(pairs []*ast.MappingValueNode, def *schema.Definition) *Token {
	t := &Token{Kind: KindMapping, Definition: def}

	for _, p := range pairs {
		if p == nil || p.Key == nil {
			continue
		}

		name := ""
		if tok := p.Key.GetToken(); tok != nil {
			name = tok.Value
		}

		childDef := def.Property(name)

		key := c.scalar(p.Key, childDef)
		if key == nil {
			continue
		}

		value := c.node(p.Value, childDef)
		if value == nil {
			// Key with no value yet: synthesize an empty scalar spanning the
			// remainder of the key's line so the cursor can resolve into it.
			value = c.emptyScalar(key, childDef)
		}

		t.Entries = append(t.Entries, Entry{Key: key, Value: value})
	}

	if len(t.Entries) > 0 {
		first := t.Entries[0].Key
		last := t.Entries[len(t.Entries)-1]

		end := last.Key
		if last.Value != nil && last.Value.Range != nil {
			end = last.Value
		}

		t.Range = span(first.Range, end.Range)
	}

	return t
}

func (c *converter) sequence(n *ast.SequenceNode, def *schema.Definition) *Token {
	t := &Token{Kind: KindSequence, Definition: def}

	var itemDef *schema.Definition
	if def != nil {
		itemDef = def.Items
	}

	for _, v := range n.Values {
		item := c.node(v, itemDef)
		if item != nil {
			t.Items = append(t.Items, item)
		}
	}

	if len(t.Items) > 0 {
		t.Range = span(t.Items[0].Range, t.Items[len(t.Items)-1].Range)
	}

	return t
}

func (c *converter) scalar(n ast.Node, def *schema.Definition) *Token {
	t := &Token{Kind: KindScalar, Value: scalarText(n), Definition: def}

	tok := n.GetToken()
	if tok == nil || tok.Position == nil {
		return t
	}

	start := c.doc.PositionFromRuneColumn(tok.Position.Line-1, tok.Position.Column-1)

	written := strings.TrimSpace(tok.Origin)

	end := document.Position{Line: start.Line, Character: start.Character + document.UTF16Len(written)}
	if strings.ContainsRune(written, '\n') {
		// Multi-line scalars anchor to the end of their first line.
		end = document.Position{Line: start.Line, Character: c.doc.LineLength(start.Line)}
	}

	t.Range = &document.Range{Start: start, End: end}

	return t
}

// emptyScalar builds the placeholder value token for a key with no value,
// covering the whitespace between the separator and the end of the line.
func (c *converter) emptyScalar(key *Token, def *schema.Definition) *Token {
	t := &Token{Kind: KindScalar, Definition: def}

	if key.Range == nil {
		return t
	}

	line := key.Range.End.Line
	length := c.doc.LineLength(line)

	start := key.Range.End.Character + 1 // past the separator
	if start < length {
		start++ // and the space that follows it
	}

	if start > length {
		start = length
	}

	t.Range = &document.Range{
		Start: document.Position{Line: line, Character: start},
		End:   document.Position{Line: line, Character: length},
	}

	return t
}

func scalarText(n ast.Node) string {
	switch v := n.(type) {
	case *ast.StringNode:
		return v.Value
	case *ast.LiteralNode:
		if v.Value != nil {
			return v.Value.Value
		}

		return ""
	default:
		if tok := n.GetToken(); tok != nil {
			return tok.Value
		}

		return ""
	}
}

func span(a, b *document.Range) *document.Range {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		r := document.Range{Start: a.Start, End: b.End}
		if r.End.Before(r.Start) {
			r.End = a.End
		}

		return &r
	}
}
