// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package service is the guarded body of the process: it loads the logging
// configuration, transitions the logger handle to its configured phase, wires
// the demonstration routes and runs the HTTP server until shutdown is
// requested.
package service
