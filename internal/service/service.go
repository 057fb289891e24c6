// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package service

import (
	"context"
	"net/http"

	"github.com/datalust/go-fiber-logging-example/internal/config"
	"github.com/datalust/go-fiber-logging-example/internal/logger"
	"github.com/datalust/go-fiber-logging-example/internal/server"
)

const (
	loggerName = "demo:service"

	// recordQueueSize bounds the records buffered in front of the sinks.
	recordQueueSize = 256
)

// Run brings up the full service and blocks until ctx is cancelled. The
// sequence is: load the logging configuration, replace the bootstrap phase of
// handle with the configured logger, start the HTTP server with the
// demonstration routes, wait for shutdown, stop the server. Any failure is
// returned to the caller for the lifecycle guard to record.
func Run(ctx context.Context, handle *logger.Handle, configPath string) error {
	loggingConfig, err := config.NewLoggingConfigFromPath(configPath)
	if err != nil {
		return err
	}

	configured, sink, err := buildLogger(loggingConfig)
	if err != nil {
		return err
	}
	handle.Replace(configured, sink)

	log := handle.WithName(loggerName)
	log.Debug("logger configured", "sinks", len(loggingConfig.Sinks))

	srv, err := server.NewServer(ctx)
	if err != nil {
		return err
	}

	srv.AddRoute(http.MethodGet, "/", greetingHandler)
	srv.AddRoute(http.MethodGet, "/oops", oopsHandler)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- srv.Start()
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	log.Debug("shutdown requested, stopping server")
	if err := srv.Stop(); err != nil {
		return err
	}

	// Listen returns once the shutdown completed.
	return <-listenErr
}
