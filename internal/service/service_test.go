// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

func writeConfigFile(t *testing.T, path string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.json")
	content := fmt.Sprintf(`{
		"minimumLevel": {"default": "INFO"},
		"sinks": [{"name": "file", "args": {"path": %q}}]
	}`, path)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestRun(t *testing.T) {
	t.Setenv("HTTP_PORT", "3004")

	recordsPath := filepath.Join(t.TempDir(), "records.jsonl")
	configPath := writeConfigFile(t, recordsPath)

	handle := logger.NewHandle(new(bytes.Buffer))
	ctx, cancel := context.WithCancel(logger.WithContext(t.Context(), handle))

	runErr := make(chan error, 1)
	go func() {
		runErr <- Run(ctx, handle, configPath)
	}()

	time.Sleep(1 * time.Second)
	require.Equal(t, logger.ConfiguredPhase, handle.Phase())

	response, err := http.Get("http://localhost:3004/")
	require.NoError(t, err)
	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	response.Body.Close()
	require.Equal(t, http.StatusOK, response.StatusCode)
	require.Equal(t, GreetingMessage, string(body))

	response, err = http.Get("http://localhost:3004/oops")
	require.NoError(t, err)
	response.Body.Close()
	require.Equal(t, http.StatusInternalServerError, response.StatusCode)

	cancel()
	require.NoError(t, <-runErr)

	require.NoError(t, handle.Close())
	content, err := os.ReadFile(recordsPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), logger.RequestCompletedMessage)
	assert.Contains(t, string(content), ErrOops.Error())
}

func TestRunWithMissingConfig(t *testing.T) {
	t.Parallel()

	handle := logger.NewHandle(new(bytes.Buffer))
	err := Run(t.Context(), handle, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, logger.BootstrapPhase, handle.Phase())
}
