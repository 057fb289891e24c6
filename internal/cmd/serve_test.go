// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalust/go-fiber-logging-example/internal/lifecycle"
	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

func TestServeCmd(t *testing.T) {
	t.Parallel()

	t.Run("config flag defaults to config.json", func(t *testing.T) {
		t.Parallel()

		handle := logger.NewHandle(new(bytes.Buffer))
		cmd := ServeCmd(handle)

		flag := cmd.Flags().Lookup("config")
		require.NotNil(t, flag)
		assert.Equal(t, defaultConfigPath, flag.DefValue)
	})

	t.Run("failing body leaves the command without error", func(t *testing.T) {
		t.Parallel()

		buffer := new(bytes.Buffer)
		handle := logger.NewHandle(buffer)
		cmd := ServeCmd(handle)

		ctx := logger.WithContext(t.Context(), handle)
		cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.json")})

		err := cmd.ExecuteContext(ctx)
		require.NoError(t, err)

		logs := buffer.String()
		assert.Contains(t, logs, lifecycle.StartingMessage)
		assert.Contains(t, logs, lifecycle.UnhandledMessage)
		assert.Contains(t, logs, lifecycle.ShutdownMessage)
	})
}
