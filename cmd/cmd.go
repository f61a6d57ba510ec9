// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/flowls/cmd/resolve"
	"github.com/matt-FFFFFF/flowls/cmd/serve"
	"github.com/matt-FFFFFF/flowls/cmd/validate"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		serve.ServeCmd,
		validate.ValidateCmd,
		resolve.ResolveCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "flowls",
	Description: `Flowls is a language server and validation toolkit for workflow YAML files.
It resolves the document token under a cursor, derives context-aware completion
candidates from the workflow schema and from dynamic value providers, and maps
schema violations onto precise document ranges as diagnostics. The serve command
speaks the language server protocol over stdio; validate and resolve expose the
same engines for scripting and CI.`,
	Usage:     "flowls serve",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
