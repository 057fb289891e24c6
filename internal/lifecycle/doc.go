// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package lifecycle wraps the service startup-through-shutdown sequence in a
// logging guard: a bootstrap logger handle exists before anything else can
// fail, any failure escaping the guarded body is recorded once at fatal
// severity and then suppressed, and the handle is flushed exactly once on
// every exit path.
package lifecycle
