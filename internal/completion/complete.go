// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package completion

import (
	"context"
	"sort"
	"strings"

	"github.com/matt-FFFFFF/flowls/internal/ctxlog"
	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/expression"
	"github.com/matt-FFFFFF/flowls/internal/providers"
	"github.com/matt-FFFFFF/flowls/internal/schema"
	"github.com/matt-FFFFFF/flowls/internal/workflow"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator orders candidate labels. Built once; collators are not mutated.
var collator = collate.New(language.English)

// ItemKind distinguishes mapping-key candidates from value candidates.
type ItemKind int

// Item kinds.
const (
	ItemKindValue ItemKind = iota
	ItemKindKey
)

// Item is one completion suggestion. Range, when present, is the exact span
// the label should replace; an absent range means insertion at the cursor.
type Item struct {
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Kind        ItemKind        `json:"kind"`
	Range       *document.Range `json:"range,omitempty"`
}

// Request carries one completion computation. The provider maps are
// optional; built-in tables are consulted regardless, after any caller
// overrides. No state is retained between requests.
type Request struct {
	URI              string
	Text             string
	Position         document.Position
	ValueProviders   providers.ValueProviders
	ContextProviders providers.ContextProviders
}

// Complete computes the ordered completion list for the request. Completion
// is advisory: unparseable documents, unresolvable cursors, and faulting
// providers all yield an empty list, never an error.
func Complete(ctx context.Context, req Request) []Item {
	doc := document.New(req.URI, req.Text)

	// There is no well-formed token to complete while the separator is the
	// character immediately before the cursor.
	if doc.RuneBefore(req.Position) == ':' {
		return nil
	}

	root, err := workflow.ParseForPosition(ctx, doc, req.Position)
	if err != nil {
		ctxlog.Debug(ctx, "no completions for unparseable document", "uri", req.URI, "error", err)

		return nil
	}

	res := Resolve(req.Position, root)
	if res.Token == nil && res.Parent == nil {
		return nil
	}

	wctx := workflow.NewContext(doc, root, res.Path)

	if res.Token.IsScalar() && res.Token.Definition != nil &&
		res.Token.Definition.Expression && expression.Contains(res.Token.Value) {
		return completeExpression(ctx, doc, req, res, wctx)
	}

	var values []schema.Value

	kind := ItemKindValue

	if completingKey(res) {
		values = res.Parent.Definition.Keys()
		kind = ItemKindKey
	} else {
		values = selectValues(ctx, req, res, wctx)
	}

	values = filterValues(values, existingValues(res.Token, res.Parent))
	values = sortValues(values)

	var replace *document.Range
	if res.Token != nil {
		replace = res.Token.Range
	}

	items := make([]Item, 0, len(values))
	for _, v := range values {
		items = append(items, Item{Label: v.Label, Description: v.Description, Kind: kind, Range: replace})
	}

	return items
}

// completingKey reports whether the resolution points at a mapping key
// (possibly not yet typed) rather than a value.
func completingKey(res Resolution) bool {
	if res.Parent == nil || res.Parent.Kind != workflow.KindMapping {
		return false
	}

	return res.Token == nil || res.KeyToken == nil
}

// selectValues consults the candidate sources in priority order, first
// match wins. A caller-supplied provider short-circuits on any defined
// result, even an empty one: empty customization means "no values", not
// "try the default". A faulting provider falls through to the next tier.
func selectValues(ctx context.Context, req Request, res Resolution, wctx *workflow.Context) []schema.Value {
	keyName := ""
	if res.KeyToken != nil {
		keyName = res.KeyToken.Value
	}

	if fetch, ok := req.ValueProviders[keyName]; ok && keyName != "" {
		values, err := fetch(ctx, wctx)
		if err == nil && values != nil {
			return values
		}

		if err != nil {
			ctxlog.Debug(ctx, "value provider failed", "key", keyName, "error", err)
		}
	}

	builtin := providers.DefaultValueProviders()

	if fetch, ok := builtin[keyName]; ok && keyName != "" {
		if values, err := fetch(ctx, wctx); err == nil {
			return values
		}
	}

	if res.Parent != nil && res.Parent.Definition != nil {
		if fetch, ok := builtin[res.Parent.Definition.Key]; ok {
			if values, err := fetch(ctx, wctx); err == nil {
				return values
			}
		}
	}

	return staticValues(res)
}

// staticValues returns the schema-declared enumeration for the resolved
// token, falling back to the parent's definition when no token resolved.
func staticValues(res Resolution) []schema.Value {
	def := definitionOf(res)
	if def == nil {
		return nil
	}

	if len(def.Values) > 0 {
		return def.Values
	}

	if def.Items != nil {
		return def.Items.Values
	}

	return nil
}

func definitionOf(res Resolution) *schema.Definition {
	if res.Token != nil && res.Token.Definition != nil {
		return res.Token.Definition
	}

	if res.KeyToken != nil && res.KeyToken.Definition != nil {
		return res.KeyToken.Definition
	}

	if res.Parent != nil {
		return res.Parent.Definition
	}

	return nil
}

// existingValues computes the sibling values to exclude from candidates:
// scalar items of a sequence parent, or declared key names when completing
// a new entry in a mapping. A resolved non-scalar token disables exclusion.
func existingValues(token, parent *workflow.Token) map[string]struct{} {
	if token != nil && token.Kind != workflow.KindScalar {
		return nil
	}

	if parent == nil {
		return nil
	}

	set := make(map[string]struct{})

	switch parent.Kind {
	case workflow.KindSequence:
		for _, item := range parent.Items {
			if item != token && item.IsScalar() && item.Value != "" {
				set[item.Value] = struct{}{}
			}
		}
	case workflow.KindMapping:
		if token != nil {
			return nil
		}

		for _, key := range parent.Keys() {
			set[key] = struct{}{}
		}
	default:
		return nil
	}

	if len(set) == 0 {
		return nil
	}

	return set
}

func filterValues(values []schema.Value, excluded map[string]struct{}) []schema.Value {
	if len(excluded) == 0 {
		return values
	}

	kept := make([]schema.Value, 0, len(values))

	for _, v := range values {
		if _, ok := excluded[v.Label]; !ok {
			kept = append(kept, v)
		}
	}

	return kept
}

// sortValues orders candidates by locale-aware label comparison. The input
// is never sorted in place: candidate slices are frequently owned by the
// schema tables or by providers, and a request must not mutate them.
func sortValues(values []schema.Value) []schema.Value {
	sorted := make([]schema.Value, len(values))
	copy(sorted, values)

	sort.Slice(sorted, func(i, j int) bool {
		return collator.CompareString(sorted[i].Label, sorted[j].Label) < 0
	})

	return sorted
}

// completeExpression hands the enclosing ${{ ... }} fragment to the
// expression completer. Expression items carry no replacement range; they
// insert at the cursor.
func completeExpression(
	ctx context.Context,
	doc *document.Document,
	req Request,
	res Resolution,
	wctx *workflow.Context,
) []Item {
	if res.Token.Range == nil {
		return nil
	}

	written := doc.GetText(*res.Token.Range)
	rel := doc.OffsetAt(req.Position) - doc.OffsetAt(res.Token.Range.Start)

	inner := expression.Extract(written, rel)
	if inner == written {
		// The cursor is not inside any expression in this scalar.
		return nil
	}

	cps := req.ContextProviders
	if cps == nil {
		cps = providers.DefaultContextProviders()
	}

	values := expression.Complete(ctx, strings.TrimSpace(inner), wctx, cps, nil)

	items := make([]Item, 0, len(values))
	for _, v := range values {
		items = append(items, Item{Label: v.Label, Description: v.Description})
	}

	return items
}
