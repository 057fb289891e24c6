// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/datalust/go-fiber-logging-example/internal/info"
	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

const (
	loggerName = "demo:server"

	// statusRoutePrefix marks the routes excluded from request logging.
	statusRoutePrefix = "/-/"
)

// Handler processes a request and returns the response body. A returned
// error maps to a 500 JSON envelope.
type Handler func(ctx context.Context) (string, error)

type Server interface {
	App() *fiber.App
	AddRoute(method string, path string, handler Handler)
	Start() error
	Stop() error
}

type impServer struct {
	config

	app *fiber.App
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// NewServer builds the Fiber application with the request logging middleware
// and the status routes. The logger is taken from ctx so requests are logged
// through the live phase of the handle.
func NewServer(ctx context.Context) (Server, error) {
	cfg, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.DisableStartupMessage,
		Immutable:             true, // ensure that accessing request body returns a copy that is valid after the request lifecycle
	})
	log := logger.FromContext(ctx)
	app.Use(logger.RequestMiddlewareLogger(log, []string{statusRoutePrefix}))

	statusRoutes(app, info.AppName, info.Version)

	return &impServer{
		app:    app,
		config: *cfg,
	}, nil
}

func (s *impServer) App() *fiber.App {
	return s.app
}

func (s *impServer) AddRoute(method string, path string, handler Handler) {
	s.app.Add(method, path, func(ctx *fiber.Ctx) error {
		body, err := handler(ctx.UserContext())
		if err != nil {
			log := logger.FromContext(ctx.UserContext()).WithName(loggerName)
			log.Error("error handling request", "path", path, "error", err)
			return ctx.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"statusCode": http.StatusInternalServerError,
				"error":      http.StatusText(http.StatusInternalServerError),
				"message":    "error processing request",
			})
		}
		return ctx.Status(http.StatusOK).SendString(body)
	})
}

func (s *impServer) Start() error {
	if err := s.app.Listen(fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort)); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}
