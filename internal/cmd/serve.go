// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "start the demonstration web server"
	serveCmdLong  = `Start the demonstration web server.

	The server runs under a lifecycle logging guard: a bootstrap logger is
	live before anything else can fail, the configured logger replaces it once
	the logging configuration has been loaded, and every exit path flushes the
	pending log records before the process terminates. A failure during
	startup or run is recorded at fatal severity and the process still exits
	cleanly.`

	serveCmdExample = `# Start the server with the default configuration file
	logging-demo serve

	# Start the server with a custom configuration file
	logging-demo serve --config ./config.json`
)

// ServeCmd returns the "serve" cli command running the service under the
// lifecycle guard that owns handle.
func ServeCmd(handle *logger.Handle) *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.toOptions(handle)

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			// A failing service body is recorded by the guard, never
			// propagated: the command always terminates without error.
			opts.execute(cmd.Context())
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}
