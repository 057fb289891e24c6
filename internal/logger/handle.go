// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

const (
	// BootstrapPhase is the initial console-only state of a handle, live
	// before any configuration has been loaded.
	BootstrapPhase = "bootstrap"
	// ConfiguredPhase is the state of a handle after Replace installed the
	// fully configured logger.
	ConfiguredPhase = "configured"
)

// state pairs a logger with the sink it writes to.
type state struct {
	logger Logger
	sink   Sink
	phase  string
}

// Handle is the single owned logging resource of the process. It starts in
// the bootstrap phase over a console sink and is swapped to the configured
// phase once the logging configuration has been loaded. Records always go
// through whichever phase is live at call time. Close flushes every sink that
// was ever attached, exactly once.
type Handle struct {
	current atomic.Pointer[state]

	lock    sync.Mutex
	retired []Sink

	closeOnce sync.Once
	closeErr  error
}

// Make sure that Handle is a Logger.
var _ Logger = &Handle{}

// NewHandle creates a handle in the bootstrap phase writing to w.
func NewHandle(w io.Writer) *Handle {
	sink := NewConsoleSink(w)
	handle := &Handle{}
	handle.current.Store(&state{
		logger: NewLogger(sink),
		sink:   sink,
		phase:  BootstrapPhase,
	})
	return handle
}

// Replace transitions the handle to the configured phase. The previous sink
// is retired without draining it synchronously; Close flushes it together
// with the current one.
func (h *Handle) Replace(logger Logger, sink Sink) {
	h.lock.Lock()
	defer h.lock.Unlock()

	previous := h.current.Swap(&state{
		logger: logger,
		sink:   sink,
		phase:  ConfiguredPhase,
	})
	h.retired = append(h.retired, previous.sink)
}

// Phase returns the name of the currently live configuration state.
func (h *Handle) Phase() string {
	return h.current.Load().phase
}

// Close flushes and closes every sink attached over the handle lifetime and
// blocks until all queued records are durably handed off. Only the first call
// has an effect; later calls return the first result.
func (h *Handle) Close() error {
	h.closeOnce.Do(func() {
		h.lock.Lock()
		defer h.lock.Unlock()

		var errs []error
		for _, sink := range h.retired {
			errs = append(errs, sink.Close())
		}
		errs = append(errs, h.current.Load().sink.Close())

		h.closeErr = errors.Join(errs...)
	})

	return h.closeErr
}

func (h *Handle) WithName(name string) Logger {
	return h.current.Load().logger.WithName(name)
}

func (h *Handle) With(args ...interface{}) Logger {
	return h.current.Load().logger.With(args...)
}

func (h *Handle) SetLevel(level Level) {
	h.current.Load().logger.SetLevel(level)
}

func (h *Handle) Trace(msg string, args ...interface{}) {
	h.current.Load().logger.Trace(msg, args...)
}

func (h *Handle) Debug(msg string, args ...interface{}) {
	h.current.Load().logger.Debug(msg, args...)
}

func (h *Handle) Info(msg string, args ...interface{}) {
	h.current.Load().logger.Info(msg, args...)
}

func (h *Handle) Warn(msg string, args ...interface{}) {
	h.current.Load().logger.Warn(msg, args...)
}

func (h *Handle) Error(msg string, args ...interface{}) {
	h.current.Load().logger.Error(msg, args...)
}

func (h *Handle) Fatal(msg string, args ...interface{}) {
	h.current.Load().logger.Fatal(msg, args...)
}
