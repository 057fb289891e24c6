// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	requestIDHeaderName = "x-request-id"

	IncomingRequestMessage  = "incoming request"
	RequestCompletedMessage = "request completed"
)

// requestID returns the inbound request id header or generates a new one.
func requestID(fiberCtx *fiber.Ctx) string {
	if requestID := fiberCtx.Get(requestIDHeaderName); requestID != "" {
		return requestID
	}

	// Generate a random uuid string. e.g. 16c9c1f2-c001-40d3-bbfe-48857367e7b5
	requestID, err := uuid.NewRandom()
	if err != nil {
		panic(fmt.Errorf("error generating request id: %w", err))
	}
	return requestID.String()
}

// RequestMiddlewareLogger is a fiber middleware to log all requests.
// It logs the incoming request and when request is completed, adding latency of the request.
// Requests whose path starts with one of excludedPrefix are not logged.
func RequestMiddlewareLogger(logger Logger, excludedPrefix []string) func(*fiber.Ctx) error {
	return func(fiberCtx *fiber.Ctx) error {
		path := string(fiberCtx.Request().URI().RequestURI())
		for _, prefix := range excludedPrefix {
			if strings.HasPrefix(path, prefix) {
				return fiberCtx.Next()
			}
		}

		start := time.Now()

		requestLogger := logger.WithName("request").With("requestId", requestID(fiberCtx))

		ctx := WithContext(fiberCtx.UserContext(), requestLogger)
		fiberCtx.SetUserContext(ctx)

		requestLogger.Trace(IncomingRequestMessage,
			"method", fiberCtx.Method(),
			"path", path,
			"userAgent", fiberCtx.Get("user-agent"),
		)

		err := fiberCtx.Next()

		statusCode := fiberCtx.Response().StatusCode()
		bodySize := len(fiberCtx.Response().Body())
		if fiberErr, ok := err.(*fiber.Error); err != nil && ok {
			statusCode = fiberErr.Code
			bodySize = len(fiberErr.Error())
		}

		requestLogger.Info(RequestCompletedMessage,
			"method", fiberCtx.Method(),
			"path", path,
			"statusCode", statusCode,
			"bytes", bodySize,
			"responseTime", float64(time.Since(start).Milliseconds()),
		)

		return err
	}
}
