// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package service

import (
	"context"
	"errors"

	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

const (
	// GreetingMessage is the fixed body of the root route.
	GreetingMessage = "Hello, world!"
)

var (
	// ErrOops is the error the always-failing route returns to exercise the
	// failure logging path.
	ErrOops = errors.New("this route always fails")
)

// greetingHandler returns the fixed greeting.
func greetingHandler(ctx context.Context) (string, error) {
	logger.FromContext(ctx).Debug("serving greeting")
	return GreetingMessage, nil
}

// oopsHandler unconditionally fails.
func oopsHandler(_ context.Context) (string, error) {
	return "", ErrOops
}
