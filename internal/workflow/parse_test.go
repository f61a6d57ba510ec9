// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workflow

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validWorkflow = `name: ci
on: push
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - run: echo hi
`

func TestParse(t *testing.T) {
	ctx := context.Background()
	doc := document.New("test.yaml", validWorkflow)

	root, err := Parse(ctx, doc)
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Equal(t, KindMapping, root.Kind)

	assert.Equal(t, []string{"name", "on", "jobs"}, root.Keys())

	name := root.Entry("name")
	require.True(t, name.IsScalar())
	assert.Equal(t, "ci", name.Value)
	assert.Equal(t, &document.Range{
		Start: document.Position{Line: 0, Character: 6},
		End:   document.Position{Line: 0, Character: 8},
	}, name.Range)

	on := root.Entry("on")
	require.True(t, on.IsScalar())
	assert.Equal(t, "push", on.Value)
	require.NotNil(t, on.Definition)
	assert.Equal(t, "on", on.Definition.Key)

	jobs := root.Entry("jobs")
	require.Equal(t, KindMapping, jobs.Kind)

	build := jobs.Entry("build")
	require.Equal(t, KindMapping, build.Kind)
	require.NotNil(t, build.Definition)
	assert.Equal(t, "job", build.Definition.Key)

	runsOn := build.Entry("runs-on")
	require.True(t, runsOn.IsScalar())
	assert.Equal(t, "ubuntu-latest", runsOn.Value)
	assert.Equal(t, &document.Range{
		Start: document.Position{Line: 4, Character: 13},
		End:   document.Position{Line: 4, Character: 26},
	}, runsOn.Range)

	steps := build.Entry("steps")
	require.Equal(t, KindSequence, steps.Kind)
	require.Len(t, steps.Items, 1)

	run := steps.Items[0].Entry("run")
	require.True(t, run.IsScalar())
	assert.Equal(t, "echo hi", run.Value)
	require.NotNil(t, run.Definition)
	assert.True(t, run.Definition.Expression)
}

func TestParseRootMappingRange(t *testing.T) {
	ctx := context.Background()
	doc := document.New("test.yaml", "on: push")

	root, err := Parse(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, &document.Range{
		Start: document.Position{Line: 0, Character: 0},
		End:   document.Position{Line: 0, Character: 8},
	}, root.Range)
}

func TestParseFlowSequence(t *testing.T) {
	ctx := context.Background()
	doc := document.New("test.yaml", "on: [push, check_run, pr]")

	root, err := Parse(ctx, doc)
	require.NoError(t, err)

	on := root.Entry("on")
	require.Equal(t, KindSequence, on.Kind)
	require.Len(t, on.Items, 3)

	assert.Equal(t, "pr", on.Items[2].Value)
	assert.Equal(t, &document.Range{
		Start: document.Position{Line: 0, Character: 22},
		End:   document.Position{Line: 0, Character: 24},
	}, on.Items[2].Range)

	// Sequence items inherit the item definition of their field.
	require.NotNil(t, on.Items[0].Definition)
	assert.Equal(t, "on", on.Items[0].Definition.Key)
}

func TestParseEmptyValue(t *testing.T) {
	ctx := context.Background()
	doc := document.New("test.yaml", "on: push\njobs:\n  build:\n    runs-on: ")

	root, err := Parse(ctx, doc)
	require.NoError(t, err)

	runsOn := root.Entry("jobs").Entry("build").Entry("runs-on")
	require.True(t, runsOn.IsScalar())
	assert.Empty(t, runsOn.Value)

	// The placeholder sits between the separator and the end of the line so
	// the cursor can resolve into it.
	require.NotNil(t, runsOn.Range)
	assert.Equal(t, 3, runsOn.Range.Start.Line)
	assert.True(t, runsOn.Contains(document.Position{Line: 3, Character: 13}))

	require.NotNil(t, runsOn.Definition)
	assert.Equal(t, "runs-on", runsOn.Definition.Key)
}

func TestParseMultilineScalar(t *testing.T) {
	ctx := context.Background()
	doc := document.New("test.yaml", "on: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n    steps:\n      - run: |\n          echo one\n          echo two\n")

	root, err := Parse(ctx, doc)
	require.NoError(t, err)

	run := root.Entry("jobs").Entry("build").Entry("steps").Items[0].Entry("run")
	require.True(t, run.IsScalar())
	require.NotNil(t, run.Range)

	// Multi-line scalars anchor to their first line.
	assert.Equal(t, run.Range.Start.Line, run.Range.End.Line)
}

func TestParseErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Parse(ctx, document.New("test.yaml", ""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Parse(ctx, document.New("test.yaml", "on: [push"))
	assert.ErrorIs(t, err, ErrParse)
}

func TestParseForPosition(t *testing.T) {
	ctx := context.Background()

	t.Run("valid document needs no patch", func(t *testing.T) {
		doc := document.New("test.yaml", validWorkflow)

		root, err := ParseForPosition(ctx, doc, document.Position{Line: 1, Character: 5})
		require.NoError(t, err)
		assert.NotNil(t, root.Entry("on"))
	})

	t.Run("bare word on cursor line is patched", func(t *testing.T) {
		doc := document.New("test.yaml", "on: push\njobs:\n  build:\n    runs-on: ubuntu-latest\n    ste")

		root, err := ParseForPosition(ctx, doc, document.Position{Line: 4, Character: 7})
		require.NoError(t, err)

		build := root.Entry("jobs").Entry("build")
		require.NotNil(t, build)
		assert.Contains(t, build.Keys(), "ste")
	})

	t.Run("failure away from the cursor is not patched", func(t *testing.T) {
		doc := document.New("test.yaml", "on: [push\njobs:\n  build:\n    runs-on: ubuntu-latest")

		_, err := ParseForPosition(ctx, doc, document.Position{Line: 3, Character: 10})
		assert.ErrorIs(t, err, ErrParse)
	})
}
