// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalust/go-fiber-logging-example/internal/lifecycle"
	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

func TestServeOptionsValidate(t *testing.T) {
	t.Parallel()

	t.Run("missing config path", func(t *testing.T) {
		t.Parallel()

		opts := &serveOptions{}
		require.ErrorIs(t, opts.validate(), errNoConfigPath)
	})

	t.Run("valid options", func(t *testing.T) {
		t.Parallel()

		opts := &serveOptions{configPath: "config.json"}
		require.NoError(t, opts.validate())
	})
}

func TestServeOptionsExecuteRecordsStartupFailure(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	handle := logger.NewHandle(buffer)
	opts := &serveOptions{
		configPath: filepath.Join(t.TempDir(), "missing.json"),
		handle:     handle,
	}

	opts.execute(t.Context())

	messages := make([]string, 0)
	levels := make([]string, 0)
	for _, line := range strings.Split(buffer.String(), "\n") {
		if line == "" {
			continue
		}

		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		messages = append(messages, record["@message"].(string))
		levels = append(levels, record["@level"].(string))
	}

	require.Equal(t, []string{
		lifecycle.StartingMessage,
		lifecycle.UnhandledMessage,
		lifecycle.ShutdownMessage,
	}, messages)
	assert.Equal(t, []string{"info", "error", "info"}, levels)
}
