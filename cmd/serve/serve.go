// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package serve contains the command that runs the language server over stdio.
package serve

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/flowls/internal/ctxlog"
	"github.com/matt-FFFFFF/flowls/internal/langserver"
	"github.com/matt-FFFFFF/flowls/internal/providers"
	"github.com/urfave/cli/v3"
)

const logLevelFlag = "log-level"

// ServeCmd is the command that runs the language server on stdin/stdout.
var ServeCmd = &cli.Command{
	Name: "serve",
	Description: `Run the workflow language server over stdio.
The server reads JSON-RPC messages with Content-Length framing from stdin and
writes responses to stdout, so all logging goes to stderr.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        logLevelFlag,
			Usage:       "Set the log level (debug, info, warn, error)",
			Value:       "info",
			DefaultText: "info",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the protocol stream, so logs must not land there.
	ctx = ctxlog.New(ctx, ctxlog.StderrLogger)
	ctxlog.SetLevel(cmd.String(logLevelFlag))

	srv := langserver.New(os.Stdin, os.Stdout,
		langserver.WithValueProviders(providers.DefaultValueProviders()),
		langserver.WithContextProviders(providers.DefaultContextProviders()),
	)

	return srv.Run(ctx)
}
