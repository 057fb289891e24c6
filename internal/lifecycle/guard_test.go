// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package lifecycle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

// loggedRecord holds the fields of a serialized record the tests care about.
type loggedRecord struct {
	Level   string `json:"@level"`
	Message string `json:"@message"`
	Error   string `json:"error"`
}

func parseRecords(t *testing.T, buffer *bytes.Buffer) []loggedRecord {
	t.Helper()

	records := make([]loggedRecord, 0)
	for _, line := range strings.Split(buffer.String(), "\n") {
		if line == "" {
			continue
		}

		var record loggedRecord
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}

	return records
}

func TestGuardSuccessfulBody(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	handle := logger.NewHandle(buffer)
	guard := NewGuard(handle)

	bodyRan := false
	guard.Run(t.Context(), func(ctx context.Context) error {
		bodyRan = true
		assert.Equal(t, handle, logger.FromContext(ctx))
		return nil
	})

	require.True(t, bodyRan)

	records := parseRecords(t, buffer)
	require.Len(t, records, 2)
	assert.Equal(t, StartingMessage, records[0].Message)
	assert.Equal(t, "info", records[0].Level)
	assert.Equal(t, ShutdownMessage, records[1].Message)
	assert.Equal(t, "info", records[1].Level)
}

func TestGuardFailingBody(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	guard := NewGuard(logger.NewHandle(buffer))

	bodyErr := errors.New("service failed to start")
	guard.Run(t.Context(), func(_ context.Context) error {
		return bodyErr
	})

	records := parseRecords(t, buffer)
	require.Len(t, records, 3)
	assert.Equal(t, StartingMessage, records[0].Message)
	assert.Equal(t, UnhandledMessage, records[1].Message)
	assert.Equal(t, "error", records[1].Level)
	assert.Equal(t, bodyErr.Error(), records[1].Error)
	assert.Equal(t, ShutdownMessage, records[2].Message)
}

func TestGuardPanickingBody(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	guard := NewGuard(logger.NewHandle(buffer))

	guard.Run(t.Context(), func(_ context.Context) error {
		panic("boom")
	})

	records := parseRecords(t, buffer)
	require.Len(t, records, 3)
	assert.Equal(t, UnhandledMessage, records[1].Message)
	assert.Contains(t, records[1].Error, "panic in guarded body")
	assert.Contains(t, records[1].Error, "boom")
	assert.Equal(t, ShutdownMessage, records[2].Message)
}

// observableSink counts close calls and optionally panics on a marker record.
type observableSink struct {
	panicOnMessage string

	lock       sync.Mutex
	closeCount int
}

func (s *observableSink) Write(p []byte) (int, error) {
	if s.panicOnMessage != "" && strings.Contains(string(p), s.panicOnMessage) {
		panic("sink failure")
	}
	return len(p), nil
}

func (s *observableSink) Flush() error { return nil }

func (s *observableSink) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.closeCount++
	return nil
}

func (s *observableSink) closes() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.closeCount
}

func TestGuardFlushesTheConfiguredSinkExactlyOnce(t *testing.T) {
	t.Parallel()

	handle := logger.NewHandle(new(bytes.Buffer))
	guard := NewGuard(handle)

	sink := &observableSink{}
	guard.Run(t.Context(), func(_ context.Context) error {
		handle.Replace(logger.NewLogger(sink), sink)
		return nil
	})

	assert.Equal(t, 1, sink.closes())
	assert.Equal(t, logger.ConfiguredPhase, handle.Phase())
}

func TestGuardFlushesEvenWhenTeardownLoggingFails(t *testing.T) {
	t.Parallel()

	handle := logger.NewHandle(new(bytes.Buffer))
	guard := NewGuard(handle)

	sink := &observableSink{panicOnMessage: ShutdownMessage}
	require.Panics(t, func() {
		guard.Run(t.Context(), func(_ context.Context) error {
			handle.Replace(logger.NewLogger(sink), sink)
			return nil
		})
	})

	assert.Equal(t, 1, sink.closes())
}
