// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

const (
	configPathFlagName  = "config"
	configPathFlagShort = "c"
	configPathFlagUsage = "Path to the logging configuration file (JSON or YAML)."
	defaultConfigPath   = "config.json"
)

// serveFlags holds the flags for the "serve" command.
type serveFlags struct {
	configPath string
}

// addFlags adds the cli flags to the cobra command.
func (f *serveFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&f.configPath,
		configPathFlagName,
		configPathFlagShort,
		defaultConfigPath,
		configPathFlagUsage)
}

// toOptions converts the serve flags to serveOptions bound to the process
// logger handle.
func (f *serveFlags) toOptions(handle *logger.Handle) *serveOptions {
	return &serveOptions{
		configPath: f.configPath,
		handle:     handle,
	}
}
