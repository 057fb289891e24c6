// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package lifecycle

import (
	"context"
	"fmt"

	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

const (
	// StartingMessage is emitted once before the guarded body runs.
	StartingMessage = "Starting up"
	// ShutdownMessage is emitted once after the guarded body completed,
	// whatever its outcome.
	ShutdownMessage = "Shut down complete"
	// UnhandledMessage is emitted once at fatal severity when a failure
	// escapes the guarded body.
	UnhandledMessage = "Unhandled exception"
)

// Guard owns the logger handle for the whole service lifetime.
type Guard struct {
	handle *logger.Handle
}

// NewGuard returns a guard around handle. The handle must be in its bootstrap
// phase; the guarded body is expected to transition it once configuration is
// available.
func NewGuard(handle *logger.Handle) *Guard {
	return &Guard{handle: handle}
}

// Run executes body between the fixed startup and shutdown records. The
// handle is stored in the context passed to body so every component logs
// through the live phase. A failure escaping body, returned error or panic
// alike, is recorded once at fatal severity with the error attached and then
// suppressed: the process proceeds to teardown instead of crashing. The
// handle is closed exactly once on every path, even when the shutdown record
// itself cannot be emitted.
func (g *Guard) Run(ctx context.Context, body func(context.Context) error) {
	defer g.handle.Close() //nolint:errcheck // nothing left to log a close failure to

	g.handle.Info(StartingMessage)

	if err := g.guardedBody(ctx, body); err != nil {
		g.handle.Fatal(UnhandledMessage, "error", err)
	}

	g.handle.Info(ShutdownMessage)
}

// guardedBody funnels both returned errors and escaping panics from body into
// a single error value.
func (g *Guard) guardedBody(ctx context.Context, body func(context.Context) error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic in guarded body: %v", recovered)
		}
	}()

	return body(logger.WithContext(ctx, g.handle))
}
