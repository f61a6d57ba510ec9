// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package expression

import (
	"context"
	"sort"
	"strings"

	"github.com/matt-FFFFFF/flowls/internal/ctxlog"
	"github.com/matt-FFFFFF/flowls/internal/providers"
	"github.com/matt-FFFFFF/flowls/internal/schema"
	"github.com/matt-FFFFFF/flowls/internal/workflow"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// collator orders root candidates the same way the completion engine orders
// field values.
var collator = collate.New(language.English)

// functions are the built-in expression functions.
var functions = []schema.Value{
	{Label: "always", Description: "True even when a previous step failed or the run was cancelled"},
	{Label: "cancelled", Description: "True when the run was cancelled"},
	{Label: "contains", Description: "True when the first argument contains the second"},
	{Label: "endsWith", Description: "True when the first argument ends with the second"},
	{Label: "failure", Description: "True when a previous step failed"},
	{Label: "format", Description: "Replace placeholders in a format string"},
	{Label: "fromJSON", Description: "Parse a JSON string into a value"},
	{Label: "hashFiles", Description: "Hash of the files matching the given patterns"},
	{Label: "join", Description: "Join sequence values with a separator"},
	{Label: "startsWith", Description: "True when the first argument starts with the second"},
	{Label: "success", Description: "True when no previous step has failed"},
	{Label: "toJSON", Description: "Render a value as pretty-printed JSON"},
}

// Complete returns candidates for the given trimmed expression fragment.
//
// A fragment without a dereference completes context root names and
// built-in functions. A fragment such as "github." completes the members
// of its leading context via the context provider table. Unknown contexts
// and faulting providers yield no candidates rather than an error.
func Complete(
	ctx context.Context,
	expr string,
	wctx *workflow.Context,
	cps providers.ContextProviders,
	exclude []string,
) []schema.Value {
	if cps == nil {
		cps = providers.DefaultContextProviders()
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, label := range exclude {
		excluded[label] = struct{}{}
	}

	dot := strings.Index(expr, ".")
	if dot < 0 {
		return filter(roots(cps), excluded)
	}

	root := strings.TrimSpace(expr[:dot])

	fetch, ok := cps[root]
	if !ok {
		return nil
	}

	members, err := fetch(ctx, wctx)
	if err != nil {
		ctxlog.Debug(ctx, "context provider failed", "context", root, "error", err)

		return nil
	}

	return filter(members, excluded)
}

func roots(cps providers.ContextProviders) []schema.Value {
	values := make([]schema.Value, 0, len(cps)+len(functions))

	for name := range cps {
		values = append(values, schema.Value{Label: name, Description: "Expression context"})
	}

	values = append(values, functions...)

	sort.Slice(values, func(i, j int) bool {
		return collator.CompareString(values[i].Label, values[j].Label) < 0
	})

	return values
}

func filter(values []schema.Value, excluded map[string]struct{}) []schema.Value {
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
