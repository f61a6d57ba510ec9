// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package resolve contains the command that prints the completion candidates
// for a cursor position in a workflow file.
package resolve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/flowls/internal/completion"
	"github.com/matt-FFFFFF/flowls/internal/document"
	"github.com/matt-FFFFFF/flowls/internal/providers"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	fileArg = "file"
	lineArg = "line"
	colArg  = "column"
)

var (
	// ErrReadFile is returned when the file cannot be read.
	ErrReadFile = errors.New("failed to read file")
	// ErrInvalidPosition is returned when the line or column argument is not a positive integer.
	ErrInvalidPosition = errors.New("line and column must be positive integers")
	// ErrWriteResults is returned when the candidates cannot be written to stdout.
	ErrWriteResults = errors.New("failed to write results to stdout")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// ResolveCmd is the command that derives completion candidates for a cursor
// position. Line and column are one-based, as editors display them.
var ResolveCmd = &cli.Command{
	Name:        "resolve",
	Description: "Print the completion candidates for a position in a workflow YAML file as JSON.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      fileArg,
			UsageText: "YAMLFILE",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
		&cli.StringArg{
			Name:      lineArg,
			UsageText: " LINE",
		},
		&cli.StringArg{
			Name:      colArg,
			UsageText: " COLUMN",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	fileName := cmd.StringArg(fileArg)
	if fileName == "" {
		return cli.Exit("Please provide a YAML file, a line and a column", 1)
	}

	pos, err := parsePosition(cmd.StringArg(lineArg), cmd.StringArg(colArg))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	bytes, err := afero.ReadFile(FsFactory(), fileName)
	if err != nil {
		return cli.Exit(errors.Join(ErrReadFile, err).Error(), 1)
	}

	items := completion.Complete(ctx, completion.Request{
		URI:              fileName,
		Text:             string(bytes),
		Position:         pos,
		ValueProviders:   providers.DefaultValueProviders(),
		ContextProviders: providers.DefaultContextProviders(),
	})
	if items == nil {
		items = make([]completion.Item, 0)
	}

	if err := writeItems(cmd, items); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}

// parsePosition converts one-based CLI arguments to a zero-based position.
func parsePosition(line, col string) (document.Position, error) {
	l, err := strconv.Atoi(line)
	if err != nil || l < 1 {
		return document.Position{}, ErrInvalidPosition
	}

	c, err := strconv.Atoi(col)
	if err != nil || c < 1 {
		return document.Position{}, ErrInvalidPosition
	}

	return document.Position{Line: l - 1, Character: c - 1}, nil
}

func writeItems(cmd *cli.Command, items []completion.Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	formatter := colorjson.NewFormatter()
	formatter.Indent = 2

	out, err := formatter.Marshal(decoded)
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	fmt.Fprintln(cmd.Writer, string(out))

	return nil
}
