// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps the underlying logging stack behind a consistent interface.
// It centralizes configuration and makes loggers available through context helpers.
//
// The process owns a single Handle with two configuration states: the
// bootstrap state writes to the console and is live before anything else can
// fail, the configured state is installed once the logging configuration has
// been loaded. Records are delivered to sinks; closing the handle flushes
// every attached sink exactly once.
package logger
