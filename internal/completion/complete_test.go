// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/providers"
	"github.com/matt-FFFFFF/flowls/internal/schema"
	"github.com/matt-FFFFFF/flowls/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProvider = errors.New("provider exploded")

func labels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Label)
	}

	return out
}

func complete(t *testing.T, text string, pos document.Position, opts ...func(*Request)) []Item {
	t.Helper()

	req := Request{URI: "test.yaml", Text: text, Position: pos}
	for _, opt := range opts {
		opt(&req)
	}

	return Complete(context.Background(), req)
}

func withValueProvider(key string, values []schema.Value, err error) func(*Request) {
	return func(req *Request) {
		if req.ValueProviders == nil {
			req.ValueProviders = providers.ValueProviders{}
		}

		req.ValueProviders[key] = func(context.Context, *workflow.Context) ([]schema.Value, error) {
			return values, err
		}
	}
}

func TestCompleteRootKeys(t *testing.T) {
	items := complete(t, "on: push\n", document.Position{Line: 1, Character: 0})

	got := labels(items)
	assert.Contains(t, got, "jobs")
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "permissions")

	// Declared keys are excluded when completing a new entry.
	assert.NotContains(t, got, "on")

	for _, item := range items {
		assert.Equal(t, ItemKindKey, item.Kind)
	}
}

func TestCompleteJobKeys(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n    ste"

	items := complete(t, text, document.Position{Line: 4, Character: 7})

	got := labels(items)
	assert.Contains(t, got, "steps")
	assert.Contains(t, got, "strategy")

	// The half-typed key is replaced, not appended to.
	require.NotEmpty(t, items)
	require.NotNil(t, items[0].Range)
	assert.Equal(t, document.Range{
		Start: document.Position{Line: 4, Character: 4},
		End:   document.Position{Line: 4, Character: 7},
	}, *items[0].Range)
}

func TestCompleteValues(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: "

	items := complete(t, text, document.Position{Line: 3, Character: 13})

	got := labels(items)
	assert.Contains(t, got, "ubuntu-latest")
	assert.Contains(t, got, "self-hosted")
	assert.IsIncreasing(t, got)

	for _, item := range items {
		assert.Equal(t, ItemKindValue, item.Kind)
	}
}

func TestCompleteLeavesProviderValuesUntouched(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: "
	pos := document.Position{Line: 3, Character: 13}

	// A provider may hand out the same backing slice on every call.
	cached := []schema.Value{{Label: "z-runner"}, {Label: "a-runner"}}

	items := complete(t, text, pos, withValueProvider("runs-on", cached, nil))

	assert.Equal(t, []string{"a-runner", "z-runner"}, labels(items))

	// Ordering the candidates must not reorder the provider's slice.
	assert.Equal(t, "z-runner", cached[0].Label)
	assert.Equal(t, "a-runner", cached[1].Label)
}

func TestCompleteAfterSeparator(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on:"

	// The separator is the rune immediately before the cursor.
	items := complete(t, text, document.Position{Line: 3, Character: 12})

	assert.Nil(t, items)
}

func TestCompleteUnparseableDocument(t *testing.T) {
	items := complete(t, "on: [push", document.Position{Line: 0, Character: 9})

	assert.Nil(t, items)
}

func TestCompleteProviderPrecedence(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: "
	pos := document.Position{Line: 3, Character: 13}

	t.Run("custom provider wins over builtin", func(t *testing.T) {
		items := complete(t, text, pos,
			withValueProvider("runs-on", []schema.Value{{Label: "my-runner"}}, nil))

		assert.Equal(t, []string{"my-runner"}, labels(items))
	})

	t.Run("defined but empty result short-circuits", func(t *testing.T) {
		items := complete(t, text, pos,
			withValueProvider("runs-on", []schema.Value{}, nil))

		assert.Empty(t, items)
	})

	t.Run("faulting provider falls through to builtin", func(t *testing.T) {
		items := complete(t, text, pos,
			withValueProvider("runs-on", nil, errProvider))

		assert.Contains(t, labels(items), "ubuntu-latest")
	})

	t.Run("nil result falls through to builtin", func(t *testing.T) {
		items := complete(t, text, pos,
			withValueProvider("runs-on", nil, nil))

		assert.Contains(t, labels(items), "ubuntu-latest")
	})
}

func TestCompleteStaticEnum(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n    steps:\n      - shell: "

	items := complete(t, text, document.Position{Line: 5, Character: 15})

	got := labels(items)
	assert.Contains(t, got, "bash")
	assert.Contains(t, got, "pwsh")
}

func TestCompleteSequenceExclusion(t *testing.T) {
	text := "on:\n  - push\n  - che"

	items := complete(t, text, document.Position{Line: 2, Character: 7})

	got := labels(items)
	assert.Contains(t, got, "check_run")

	// Sibling values already in the sequence are excluded; the token being
	// completed does not exclude itself.
	assert.NotContains(t, got, "push")

	require.NotEmpty(t, items)
	require.NotNil(t, items[0].Range)
	assert.Equal(t, document.Range{
		Start: document.Position{Line: 2, Character: 4},
		End:   document.Position{Line: 2, Character: 7},
	}, *items[0].Range)
}

func TestCompleteNeedsFromDocument(t *testing.T) {
	text := "on: push\njobs:\n  lint:\n    runs-on: ubuntu-latest\n  build:\n    runs-on: ubuntu-latest\n    needs: "

	items := complete(t, text, document.Position{Line: 6, Character: 11})

	assert.Equal(t, []string{"build", "lint"}, labels(items))
}

func TestCompleteExpression(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n    steps:\n      - run: echo ${{ github. }}\n"

	// Cursor immediately after "github.".
	items := complete(t, text, document.Position{Line: 5, Character: 30})

	got := labels(items)
	assert.Contains(t, got, "ref")
	assert.Contains(t, got, "event_name")

	// Expression candidates insert at the cursor rather than replacing the scalar.
	require.NotEmpty(t, items)
	assert.Nil(t, items[0].Range)
}

func TestCompleteExpressionRoots(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n    steps:\n      - run: echo ${{  }}\n"

	items := complete(t, text, document.Position{Line: 5, Character: 23})

	got := labels(items)
	assert.Contains(t, got, "github")
	assert.Contains(t, got, "matrix")
	assert.Contains(t, got, "toJSON")
}

func TestCompleteOutsideExpression(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n    steps:\n      - run: echo ${{ a }} tail\n"

	// Cursor in "tail", after the expression closed.
	items := complete(t, text, document.Position{Line: 5, Character: 29})

	assert.Empty(t, items)
}

func TestCompleteIsIdempotent(t *testing.T) {
	text := "on: push\njobs:\n  build:\n    runs-on: "
	pos := document.Position{Line: 3, Character: 13}

	first := complete(t, text, pos)
	second := complete(t, text, pos)

	assert.Equal(t, first, second)
}
