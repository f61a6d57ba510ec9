// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package providers

import (
	"context"

	"github.com/matt-FFFFFF/flowls/internal/schema"
	"github.com/matt-FFFFFF/flowls/internal/workflow"
)

// Fetcher returns candidate values for one field or context. Fetchers may
// perform I/O; they receive the request context and the ambient workflow
// context. A nil slice means "no values"; an error is treated by callers as
// "this provider produced nothing" and never surfaces to the editor.
type Fetcher func(ctx context.Context, wctx *workflow.Context) ([]schema.Value, error)

// ValueProviders maps schema field names to value fetchers.
type ValueProviders map[string]Fetcher

// ContextProviders maps expression context names to member fetchers.
type ContextProviders map[string]Fetcher

func static(values []schema.Value) Fetcher {
	return func(context.Context, *workflow.Context) ([]schema.Value, error) {
		return values, nil
	}
}

func fromNames(get func(wctx *workflow.Context) []string) Fetcher {
	return func(_ context.Context, wctx *workflow.Context) ([]schema.Value, error) {
		names := get(wctx)

		values := make([]schema.Value, 0, len(names))
		for _, n := range names {
			values = append(values, schema.Value{Label: n})
		}

		return values, nil
	}
}

var defaultValueProviders = ValueProviders{
	"runs-on": static(schema.RunnerLabels),
	"needs": fromNames(func(wctx *workflow.Context) []string {
		return wctx.JobIDs()
	}),
}

// DefaultValueProviders returns the built-in value provider table.
func DefaultValueProviders() ValueProviders {
	return defaultValueProviders
}

var githubContext = []schema.Value{
	{Label: "action", Description: "Name of the currently running action"},
	{Label: "actor", Description: "User that triggered the run"},
	{Label: "base_ref", Description: "Base ref of the pull request"},
	{Label: "event", Description: "Full event webhook payload"},
	{Label: "event_name", Description: "Name of the triggering event"},
	{Label: "head_ref", Description: "Head ref of the pull request"},
	{Label: "job", Description: "Identifier of the current job"},
	{Label: "ref", Description: "Fully-formed ref of the triggering commit"},
	{Label: "ref_name", Description: "Short ref name of the triggering commit"},
	{Label: "repository", Description: "Owner and repository name"},
	{Label: "repository_owner", Description: "Repository owner"},
	{Label: "run_attempt", Description: "Attempt number of the run"},
	{Label: "run_id", Description: "Unique identifier of the run"},
	{Label: "run_number", Description: "Sequential number of the run"},
	{Label: "sha", Description: "Commit SHA that triggered the run"},
	{Label: "token", Description: "Token for authenticating on behalf of the run"},
	{Label: "workflow", Description: "Name of the workflow"},
	{Label: "workspace", Description: "Default working directory on the runner"},
}

var runnerContext = []schema.Value{
	{Label: "arch", Description: "Architecture of the runner"},
	{Label: "debug", Description: "Set when debug logging is enabled"},
	{Label: "name", Description: "Name of the runner"},
	{Label: "os", Description: "Operating system of the runner"},
	{Label: "temp", Description: "Path of the runner's temp directory"},
	{Label: "tool_cache", Description: "Path of the runner's tool cache"},
}

var defaultContextProviders = ContextProviders{
	"github": static(githubContext),
	"runner": static(runnerContext),
	"env": fromNames(func(wctx *workflow.Context) []string {
		return wctx.EnvNames()
	}),
	"needs": fromNames(func(wctx *workflow.Context) []string {
		return wctx.JobIDs()
	}),
	"jobs": fromNames(func(wctx *workflow.Context) []string {
		return wctx.JobIDs()
	}),
	"steps": fromNames(func(wctx *workflow.Context) []string {
		return wctx.StepIDs()
	}),
	"matrix": fromNames(func(wctx *workflow.Context) []string {
		return wctx.MatrixKeys()
	}),
	"secrets": static([]schema.Value{
		{Label: "GITHUB_TOKEN", Description: "Token for authenticating on behalf of the run"},
	}),
	"inputs":   static(nil),
	"vars":     static(nil),
	"strategy": static([]schema.Value{{Label: "fail-fast"}, {Label: "job-index"}, {Label: "job-total"}, {Label: "max-parallel"}}),
}

// DefaultContextProviders returns the built-in context provider table.
func DefaultContextProviders() ContextProviders {
	return defaultContextProviders
}
