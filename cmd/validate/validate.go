// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package validate contains the command that checks workflow files and prints
// their diagnostics.
package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-getter/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/flowls/internal/ctxlog"
	"github.com/matt-FFFFFF/flowls/internal/providers"
	"github.com/matt-FFFFFF/flowls/internal/validate"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag   = "file"
	cliExitStr = ""
)

var (
	// ErrGetWorkflowFile is returned when a workflow file cannot be read.
	ErrGetWorkflowFile = fmt.Errorf("failed to get workflow file")
	// ErrDiagnostics is returned when validation reports errors.
	ErrDiagnostics = errors.New("validation reported errors")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Styles for diagnostic output, keyed by severity.
var (
	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
	styleInfo = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
	styleLocation = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
	styleClean = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

// ValidateCmd is the command that validates one or more workflow YAML files.
var ValidateCmd = &cli.Command{
	Name: "validate",
	Description: `Validate workflow YAML files and print the diagnostics.

File URLs use Hashicorp's go-getter syntax, which allows for fetching files
from various sources. See https://github.com/hashicorp/go-getter.

The exit code is non-zero when any file has error diagnostics.`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    fileFlag,
			Aliases: []string{"f"},
			Usage: "Specify the URL of a workflow YAML file to validate. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
				"Specify multiple times to validate multiple files.",
			OnlyOnce: false,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	urls := cmd.StringSlice(fileFlag)
	if len(urls) == 0 {
		logger.Error("Please specify at least one workflow file using the --file or -f flag.")
		return cli.Exit(cliExitStr, 1)
	}

	var (
		errs      *multierror.Error
		hasErrors bool
	)

	for _, u := range urls {
		bytes, err := fetch(ctx, u)
		if err != nil {
			errs = multierror.Append(errs, err)

			continue
		}

		diags := validate.Validate(ctx, validate.Request{
			URI:            u,
			Text:           string(bytes),
			ValueProviders: providers.DefaultValueProviders(),
		})

		if writeDiagnostics(cmd, u, diags) {
			hasErrors = true
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	if hasErrors {
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// writeDiagnostics prints the findings for one file and reports whether any
// of them are errors. Positions are printed one-based.
func writeDiagnostics(cmd *cli.Command, uri string, diags []validate.Diagnostic) bool {
	if len(diags) == 0 {
		fmt.Fprintf(cmd.Writer, "%s: %s\n", uri, styleClean.Render("ok"))

		return false
	}

	hasErrors := false

	for _, d := range diags {
		style := styleInfo
		label := "info"

		switch d.Severity {
		case validate.SeverityError:
			style = styleError
			label = "error"
			hasErrors = true
		case validate.SeverityWarning:
			style = styleWarning
			label = "warning"
		}

		location := fmt.Sprintf("%s:%d:%d", uri, d.Range.Start.Line+1, d.Range.Start.Character+1)

		fmt.Fprintf(cmd.Writer, "%s %s %s\n",
			styleLocation.Render(location),
			style.Render(label),
			d.Message,
		)
	}

	return hasErrors
}

// fetch reads a workflow file from the local filesystem, or via go-getter
// when the URL is not a local path.
func fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetWorkflowFile
	}

	fs := FsFactory()

	if exists, _ := afero.Exists(fs, url); exists {
		bytes, err := afero.ReadFile(fs, url)
		if err != nil {
			return nil, errors.Join(ErrGetWorkflowFile, err)
		}

		return bytes, nil
	}

	tmpDir, err := os.MkdirTemp("", "flowls-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetWorkflowFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetWorkflowFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "workflow.yaml"),
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetWorkflowFile, err)
	}

	bytes, err := os.ReadFile(res.Dst)
	if err != nil {
		return nil, errors.Join(ErrGetWorkflowFile, err)
	}

	return bytes, nil
}
