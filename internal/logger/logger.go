// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"io"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

var (
	// nullLogger is a logger that discards all log messages.
	nullLogger = &instance{log: hclog.NewNullLogger()}
)

//go:generate ${TOOLS_BIN}/stringer -type=Level
type Level int

func LevelFromString(level string) Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return INFO
	}
}

func (l Level) convertedLevel() hclog.Level {
	switch l {
	case FATAL, ERROR:
		// hclog has no level above Error; fatal records share its output
		// level and are told apart by their fixed messages.
		return hclog.Error
	case WARN:
		return hclog.Warn
	case INFO:
		return hclog.Info
	case DEBUG:
		return hclog.Debug
	case TRACE:
		return hclog.Trace
	default:
		return hclog.Info
	}
}

const (
	FATAL Level = iota
	ERROR
	WARN
	INFO
	DEBUG
	TRACE
)

// Logger describes the interface that must be implemented by all loggers
type Logger interface {
	// WithName returns a new Logger instance with the specified name.
	WithName(name string) Logger

	// With returns a new Logger instance that attaches the key/value pairs
	// to every emitted record.
	With(args ...interface{}) Logger

	// SetLevel updates the logger level.
	SetLevel(level Level)

	// Trace emit a message and key/value pairs at the TRACE level.
	Trace(msg string, args ...interface{})

	// Debug emit a message and key/value pairs at the DEBUG level.
	Debug(msg string, args ...interface{})

	// Info emit a message and key/value pairs at the INFO level.
	Info(msg string, args ...interface{})

	// Warn emit a message and key/value pairs at the WARN level.
	Warn(msg string, args ...interface{})

	// Error emit a message and key/value pairs at the ERROR level.
	Error(msg string, args ...interface{})

	// Fatal emit a message and key/value pairs at the highest severity.
	// Fatal records bypass message exclusion rules.
	Fatal(msg string, args ...interface{})
}

// Options configures a logger for the configured phase of the process.
type Options struct {
	// MinimumLevel is the default minimum level of emitted records.
	MinimumLevel Level

	// LevelOverrides maps a logger name to its own minimum level.
	LevelOverrides map[string]Level

	// ExcludeMessages lists the message templates whose records are dropped.
	ExcludeMessages []string

	// Output receives the serialized records.
	Output io.Writer
}

// Make sure that instance is a Logger.
var _ Logger = &instance{}

// instance is a Logger implementation.
type instance struct {
	log   hclog.Logger
	rules *rules
}

// rules holds the filtering state shared by a configured logger and every
// logger derived from it.
type rules struct {
	overrides map[string]Level
	excluded  map[string]struct{}
}

// NewLogger creates a new logger instance writing JSON records to writer.
// This is the bootstrap logger of the process: construction cannot fail.
func NewLogger(writer io.Writer) Logger {
	return &instance{
		log: hclog.New(&hclog.LoggerOptions{
			JSONFormat:        true,
			Output:            writer,
			TimeFn:            time.Now,
			Level:             INFO.convertedLevel(),
			IndependentLevels: true,
		}),
	}
}

// NewConfiguredLogger creates a logger instance driven by the loaded logging
// configuration: default minimum level, per-name level overrides and message
// exclusion rules.
func NewConfiguredLogger(opts Options) Logger {
	excluded := make(map[string]struct{}, len(opts.ExcludeMessages))
	for _, message := range opts.ExcludeMessages {
		excluded[message] = struct{}{}
	}

	overrides := make(map[string]Level, len(opts.LevelOverrides))
	for name, level := range opts.LevelOverrides {
		overrides[name] = level
	}

	return &instance{
		log: hclog.New(&hclog.LoggerOptions{
			JSONFormat:        true,
			Output:            opts.Output,
			TimeFn:            time.Now,
			Level:             opts.MinimumLevel.convertedLevel(),
			IndependentLevels: true,
		}),
		rules: &rules{
			overrides: overrides,
			excluded:  excluded,
		},
	}
}

func (i instance) WithName(name string) Logger {
	derived := i.log.ResetNamed(name)
	if i.rules != nil {
		if level, ok := i.rules.overrides[name]; ok {
			derived.SetLevel(level.convertedLevel())
		}
	}

	return &instance{
		log:   derived,
		rules: i.rules,
	}
}

func (i instance) With(args ...interface{}) Logger {
	return &instance{
		log:   i.log.With(args...),
		rules: i.rules,
	}
}

func (i instance) SetLevel(level Level) {
	i.log.SetLevel(level.convertedLevel())
}

func (i instance) Trace(msg string, args ...interface{}) {
	i.emit(hclog.Trace, msg, args)
}

func (i instance) Debug(msg string, args ...interface{}) {
	i.emit(hclog.Debug, msg, args)
}

func (i instance) Info(msg string, args ...interface{}) {
	i.emit(hclog.Info, msg, args)
}

func (i instance) Warn(msg string, args ...interface{}) {
	i.emit(hclog.Warn, msg, args)
}

func (i instance) Error(msg string, args ...interface{}) {
	i.emit(hclog.Error, msg, args)
}

func (i instance) Fatal(msg string, args ...interface{}) {
	i.log.Log(FATAL.convertedLevel(), msg, args...)
}

// emit forwards the record to hclog unless an exclusion rule matches its
// message template.
func (i instance) emit(level hclog.Level, msg string, args []interface{}) {
	if i.rules != nil {
		if _, ok := i.rules.excluded[msg]; ok {
			return
		}
	}

	i.log.Log(level, msg, args...)
}
