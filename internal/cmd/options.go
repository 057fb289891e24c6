// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/datalust/go-fiber-logging-example/internal/lifecycle"
	"github.com/datalust/go-fiber-logging-example/internal/logger"
	"github.com/datalust/go-fiber-logging-example/internal/service"
)

// serveOptions holds the options set for the current serve invocation.
type serveOptions struct {
	configPath string
	handle     *logger.Handle

	lock sync.Mutex
}

// validate validates the serve options and returns an error if something is wrong.
func (o *serveOptions) validate() error {
	if o.configPath == "" {
		return errNoConfigPath
	}

	return nil
}

// execute runs the service body under the lifecycle guard until a shutdown
// signal arrives. Failures are recorded by the guard and never returned.
func (o *serveOptions) execute(ctx context.Context) {
	if !o.lock.TryLock() {
		return
	}
	defer o.lock.Unlock()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard := lifecycle.NewGuard(o.handle)
	guard.Run(ctx, func(ctx context.Context) error {
		return service.Run(ctx, o.handle, o.configPath)
	})
}
