// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	netHTTP "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, logger Logger) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	require.NotNil(t, app)

	middleware := RequestMiddlewareLogger(logger, []string{"/-/"})
	require.NotNil(t, middleware)
	app.Use(middleware)

	app.Get("/foo", func(ctx *fiber.Ctx) error {
		return ctx.SendString("bar")
	})
	app.Get("/-/healthz", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(netHTTP.StatusOK)
	})

	return app
}

func TestRequestMiddlewareLogger(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	logger := NewLogger(buffer)
	logger.SetLevel(TRACE)

	app := testApp(t, logger)

	req := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/foo", nil)
	req.Header.Set("User-Agent", "UnitTestAgent/1.0")
	req.RemoteAddr = "127.0.0.1:12345"

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	logs := buffer.String()
	splitted := strings.Split(logs, "\n")
	require.Len(t, splitted, 3) // incoming request + request completed + trailing empty line
	require.Empty(t, splitted[2])
	require.Contains(t, splitted[0], IncomingRequestMessage)
	require.Contains(t, splitted[1], RequestCompletedMessage)
	require.Contains(t, splitted[1], `"statusCode":200`)
}

func TestRequestMiddlewareLoggerExcludedPrefix(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	logger := NewLogger(buffer)
	logger.SetLevel(TRACE)

	app := testApp(t, logger)

	req := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/-/healthz", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Empty(t, buffer.String())
}

func TestRequestMiddlewareLoggerRequestID(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	logger := NewLogger(buffer)

	app := testApp(t, logger)

	req := httptest.NewRequest(netHTTP.MethodGet, "http://example.com/foo", nil)
	req.Header.Set("x-request-id", "fixed-request-id")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Contains(t, buffer.String(), `"requestId":"fixed-request-id"`)
}
