// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// statusRoutes registers the liveness and readiness endpoints under the
// status prefix excluded from request logging.
func statusRoutes(app *fiber.App, serviceName, version string) {
	handler := func(ctx *fiber.Ctx) error {
		return ctx.Status(http.StatusOK).JSON(fiber.Map{
			"name":    serviceName,
			"status":  "OK",
			"version": version,
		})
	}

	app.Get(statusRoutePrefix+"healthz", handler)
	app.Get(statusRoutePrefix+"ready", handler)
}
