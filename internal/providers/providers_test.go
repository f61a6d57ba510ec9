// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package providers

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/schema"
	"github.com/matt-FFFFFF/flowls/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsedContext(t *testing.T, text string, path workflow.Path) *workflow.Context {
	t.Helper()

	doc := document.New("test.yaml", text)

	root, err := workflow.Parse(context.Background(), doc)
	require.NoError(t, err)

	return workflow.NewContext(doc, root, path)
}

func TestDefaultValueProviders(t *testing.T) {
	vps := DefaultValueProviders()

	t.Run("runs-on lists runner labels", func(t *testing.T) {
		fetch, ok := vps["runs-on"]
		require.True(t, ok)

		values, err := fetch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, schema.RunnerLabels, values)
	})

	t.Run("needs lists job identifiers", func(t *testing.T) {
		fetch, ok := vps["needs"]
		require.True(t, ok)

		wctx := parsedContext(t, "on: push\njobs:\n  one:\n    runs-on: ubuntu-latest\n  two:\n    runs-on: ubuntu-latest\n", nil)

		values, err := fetch(context.Background(), wctx)
		require.NoError(t, err)
		assert.Equal(t, []schema.Value{{Label: "one"}, {Label: "two"}}, values)
	})
}

func TestDefaultContextProviders(t *testing.T) {
	cps := DefaultContextProviders()

	t.Run("github members are static", func(t *testing.T) {
		values, err := cps["github"](context.Background(), nil)
		require.NoError(t, err)

		found := map[string]bool{}
		for _, v := range values {
			found[v.Label] = true
		}

		assert.True(t, found["ref"])
		assert.True(t, found["event_name"])
		assert.True(t, found["sha"])
	})

	t.Run("env reflects the document", func(t *testing.T) {
		wctx := parsedContext(t,
			"on: push\nenv:\n  TOP: 1\njobs:\n  build:\n    runs-on: ubuntu-latest\n    env:\n      INNER: 2\n",
			workflow.Path{workflow.Property("jobs"), workflow.Property("build"), workflow.Property("steps")},
		)

		values, err := cps["env"](context.Background(), wctx)
		require.NoError(t, err)
		assert.Equal(t, []schema.Value{{Label: "TOP"}, {Label: "INNER"}}, values)
	})

	t.Run("secrets always includes the ambient token", func(t *testing.T) {
		values, err := cps["secrets"](context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.Equal(t, "GITHUB_TOKEN", values[0].Label)
	})

	t.Run("all expected contexts are present", func(t *testing.T) {
		for _, name := range []string{"github", "runner", "env", "needs", "jobs", "steps", "matrix", "secrets", "inputs", "vars", "strategy"} {
			assert.Contains(t, cps, name)
		}
	})
}
