// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package schema

// Events are the trigger names accepted by the top-level "on" field.
var Events = []Value{
	{Label: "branch_protection_rule", Description: "Branch protection rule changes"},
	{Label: "check_run", Description: "Check run activity"},
	{Label: "check_suite", Description: "Check suite activity"},
	{Label: "create", Description: "Branch or tag created"},
	{Label: "delete", Description: "Branch or tag deleted"},
	{Label: "deployment", Description: "Deployment created"},
	{Label: "deployment_status", Description: "Deployment status provided"},
	{Label: "discussion", Description: "Discussion activity"},
	{Label: "discussion_comment", Description: "Discussion comment activity"},
	{Label: "fork", Description: "Repository forked"},
	{Label: "gollum", Description: "Wiki page updated"},
	{Label: "issue_comment", Description: "Issue or pull request comment activity"},
	{Label: "issues", Description: "Issue activity"},
	{Label: "label", Description: "Label activity"},
	{Label: "merge_group", Description: "Merge group activity"},
	{Label: "milestone", Description: "Milestone activity"},
	{Label: "page_build", Description: "GitHub Pages build"},
	{Label: "public", Description: "Repository visibility changed to public"},
	{Label: "pull_request", Description: "Pull request activity"},
	{Label: "pull_request_review", Description: "Pull request review activity"},
	{Label: "pull_request_review_comment", Description: "Pull request review comment activity"},
	{Label: "pull_request_target", Description: "Pull request activity, run in the base context"},
	{Label: "push", Description: "Commits pushed"},
	{Label: "registry_package", Description: "Registry package activity"},
	{Label: "release", Description: "Release activity"},
	{Label: "repository_dispatch", Description: "External repository dispatch event"},
	{Label: "schedule", Description: "Scheduled run"},
	{Label: "status", Description: "Commit status updated"},
	{Label: "watch", Description: "Repository starred"},
	{Label: "workflow_call", Description: "Called from another workflow"},
	{Label: "workflow_dispatch", Description: "Manually triggered run"},
	{Label: "workflow_run", Description: "Another workflow requested or completed"},
}

// RunnerLabels are the hosted runner labels known statically. Self-hosted
// fleets extend this set through a value provider.
var RunnerLabels = []Value{
	{Label: "macos-13", Description: "macOS 13 hosted runner"},
	{Label: "macos-14", Description: "macOS 14 hosted runner"},
	{Label: "macos-15", Description: "macOS 15 hosted runner"},
	{Label: "macos-latest", Description: "Latest macOS hosted runner"},
	{Label: "self-hosted", Description: "Self-hosted runner"},
	{Label: "ubuntu-22.04", Description: "Ubuntu 22.04 hosted runner"},
	{Label: "ubuntu-24.04", Description: "Ubuntu 24.04 hosted runner"},
	{Label: "ubuntu-latest", Description: "Latest Ubuntu hosted runner"},
	{Label: "windows-2022", Description: "Windows Server 2022 hosted runner"},
	{Label: "windows-2025", Description: "Windows Server 2025 hosted runner"},
	{Label: "windows-latest", Description: "Latest Windows hosted runner"},
}

var shells = []Value{
	{Label: "bash", Description: "Bash shell"},
	{Label: "cmd", Description: "Windows cmd shell"},
	{Label: "powershell", Description: "Windows PowerShell"},
	{Label: "pwsh", Description: "PowerShell Core"},
	{Label: "python", Description: "Python interpreter"},
	{Label: "sh", Description: "POSIX shell"},
}

var permissionLevels = []Value{
	{Label: "none"},
	{Label: "read"},
	{Label: "write"},
}

var permissionScopes = []string{
	"actions", "attestations", "checks", "contents", "deployments",
	"discussions", "id-token", "issues", "packages", "pages",
	"pull-requests", "repository-projects", "security-events", "statuses",
}

// workflowRoot is the definition of a complete workflow document,
// built once at package initialisation.
var workflowRoot = buildWorkflow()

// Workflow returns the root definition for workflow documents.
// The returned tables are shared and must not be mutated.
func Workflow() *Definition {
	return workflowRoot
}

func buildWorkflow() *Definition {
	freeText := func(key, desc string) *Definition {
		return &Definition{Key: key, Description: desc}
	}
	exprText := func(key, desc string) *Definition {
		return &Definition{Key: key, Description: desc, Expression: true}
	}

	globList := func(key, desc string) *Definition {
		return &Definition{
			Key:         key,
			Description: desc,
			Items:       &Definition{Key: key},
		}
	}

	permissions := &Definition{
		Key:         "permissions",
		Description: "Token permissions granted to the run",
		Values: []Value{
			{Label: "read-all", Description: "Read access to all scopes"},
			{Label: "write-all", Description: "Write access to all scopes"},
		},
		Properties: map[string]*Definition{},
	}
	for _, scope := range permissionScopes {
		permissions.Properties[scope] = &Definition{
			Key:         scope,
			Description: "Permission level for " + scope,
			Values:      permissionLevels,
		}
	}

	concurrency := &Definition{
		Key:         "concurrency",
		Description: "Concurrency group for the workflow or job",
		Properties: map[string]*Definition{
			"group":              exprText("group", "Concurrency group name"),
			"cancel-in-progress": freeText("cancel-in-progress", "Cancel in-flight runs of the same group"),
		},
	}

	env := &Definition{
		Key:         "env",
		Description: "Environment variables",
		Wildcard:    &Definition{Key: "env-value", Expression: true},
	}

	defaults := &Definition{
		Key:         "defaults",
		Description: "Default settings applied to all run steps",
		Properties: map[string]*Definition{
			"run": {
				Key:         "run",
				Description: "Defaults for run steps",
				Properties: map[string]*Definition{
					"shell":             {Key: "shell", Description: "Default shell", Values: shells},
					"working-directory": freeText("working-directory", "Default working directory"),
				},
			},
		},
	}

	step := &Definition{
		Key:         "step",
		Description: "A single step of a job",
		Properties: map[string]*Definition{
			"id":                freeText("id", "Unique step identifier"),
			"if":                exprText("if", "Condition that must hold for the step to run"),
			"name":              exprText("name", "Display name of the step"),
			"uses":              freeText("uses", "Action reference to run"),
			"run":               exprText("run", "Shell command to run"),
			"shell":             {Key: "shell", Description: "Shell used for the run command", Values: shells},
			"with":              {Key: "with", Description: "Inputs passed to the action", Wildcard: &Definition{Key: "with-value", Expression: true}},
			"env":               env,
			"continue-on-error": freeText("continue-on-error", "Do not fail the job when the step fails"),
			"timeout-minutes":   freeText("timeout-minutes", "Maximum minutes before the step is cancelled"),
			"working-directory": exprText("working-directory", "Working directory for the run command"),
		},
	}

	runsOn := &Definition{
		Key:         "runs-on",
		Description: "Runner label, or labels, the job requires",
		Expression:  true,
		Values:      RunnerLabels,
		Items:       &Definition{Key: "runs-on", Expression: true, Values: RunnerLabels},
	}

	strategy := &Definition{
		Key:         "strategy",
		Description: "Build matrix strategy for the job",
		Properties: map[string]*Definition{
			"matrix":       {Key: "matrix", Description: "Matrix variable combinations", Expression: true, Wildcard: &Definition{Key: "matrix-value"}},
			"fail-fast":    freeText("fail-fast", "Cancel remaining matrix jobs when one fails"),
			"max-parallel": freeText("max-parallel", "Maximum concurrent matrix jobs"),
		},
	}

	job := &Definition{
		Key:         "job",
		Description: "A job within the workflow",
		Required:    []string{"runs-on"},
		Properties: map[string]*Definition{
			"name":              exprText("name", "Display name of the job"),
			"needs":             {Key: "needs", Description: "Jobs that must complete first", Items: &Definition{Key: "needs"}},
			"runs-on":           runsOn,
			"permissions":       permissions,
			"environment":       exprText("environment", "Deployment environment the job targets"),
			"concurrency":       concurrency,
			"outputs":           {Key: "outputs", Description: "Outputs exposed to dependent jobs", Wildcard: &Definition{Key: "output-value", Expression: true}},
			"env":               env,
			"defaults":          defaults,
			"if":                exprText("if", "Condition that must hold for the job to run"),
			"steps":             {Key: "steps", Description: "Steps executed by the job", Items: step},
			"timeout-minutes":   freeText("timeout-minutes", "Maximum minutes before the job is cancelled"),
			"strategy":          strategy,
			"continue-on-error": exprText("continue-on-error", "Do not fail the workflow when the job fails"),
			"container":         {Key: "container", Description: "Container the job runs in", Wildcard: &Definition{Key: "container-value"}},
			"services":          {Key: "services", Description: "Service containers for the job", Wildcard: &Definition{Key: "service"}},
			"uses":              freeText("uses", "Reusable workflow to call"),
			"with":              {Key: "with", Description: "Inputs passed to the reusable workflow", Wildcard: &Definition{Key: "with-value", Expression: true}},
			"secrets":           {Key: "secrets", Description: "Secrets passed to the reusable workflow", Wildcard: &Definition{Key: "secret-value", Expression: true}},
		},
	}

	eventFilter := func(key string) *Definition {
		return &Definition{
			Key:         key,
			Description: "Filters for the " + key + " event",
			Properties: map[string]*Definition{
				"branches":        globList("branches", "Branch name patterns to include"),
				"branches-ignore": globList("branches-ignore", "Branch name patterns to exclude"),
				"tags":            globList("tags", "Tag name patterns to include"),
				"tags-ignore":     globList("tags-ignore", "Tag name patterns to exclude"),
				"paths":           globList("paths", "File path patterns to include"),
				"paths-ignore":    globList("paths-ignore", "File path patterns to exclude"),
			},
		}
	}

	on := &Definition{
		Key:         "on",
		Description: "Events that trigger the workflow",
		Values:      Events,
		Items:       &Definition{Key: "on", Values: Events},
		Properties:  map[string]*Definition{},
	}
	for _, ev := range Events {
		on.Properties[ev.Label] = &Definition{Key: ev.Label, Description: ev.Description}
	}

	on.Properties["push"] = eventFilter("push")
	on.Properties["pull_request"] = eventFilter("pull_request")
	on.Properties["pull_request_target"] = eventFilter("pull_request_target")
	on.Properties["schedule"] = &Definition{
		Key:         "schedule",
		Description: "Cron schedules that trigger the workflow",
		Items: &Definition{
			Key: "schedule-entry",
			Properties: map[string]*Definition{
				"cron": {Key: "cron", Description: "POSIX cron expression", Format: "cron"},
			},
			Required: []string{"cron"},
		},
	}
	on.Properties["workflow_dispatch"] = &Definition{
		Key:         "workflow_dispatch",
		Description: "Manual trigger configuration",
		Properties: map[string]*Definition{
			"inputs": {Key: "inputs", Description: "Inputs collected on dispatch", Wildcard: &Definition{Key: "input"}},
		},
	}

	return &Definition{
		Key:         "workflow",
		Description: "A workflow document",
		Required:    []string{"on", "jobs"},
		Properties: map[string]*Definition{
			"name":        freeText("name", "Display name of the workflow"),
			"run-name":    exprText("run-name", "Display name for individual runs"),
			"on":          on,
			"env":         env,
			"defaults":    defaults,
			"concurrency": concurrency,
			"permissions": permissions,
			"jobs": {
				Key:         "jobs",
				Description: "Jobs that make up the workflow",
				Wildcard:    job,
			},
		},
	}
}
