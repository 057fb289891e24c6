// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package fake provides a recording logger for tests.
package fake

import (
	"sync"

	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

// Record is a single captured log call.
type Record struct {
	Level   logger.Level
	Message string
	Args    []interface{}
}

// store collects the records of a logger and every logger derived from it.
type store struct {
	lock    sync.Mutex
	records []Record
}

func (s *store) append(level logger.Level, msg string, args []interface{}) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.records = append(s.records, Record{Level: level, Message: msg, Args: args})
}

// Logger is a logger.Logger implementation recording every call.
type Logger struct {
	store *store
	args  []interface{}
}

// Make sure that Logger is a logger.Logger.
var _ logger.Logger = &Logger{}

// NewLogger returns a recording logger.
func NewLogger() *Logger {
	return &Logger{store: &store{}}
}

// Records returns a copy of the captured records, in emission order.
func (l *Logger) Records() []Record {
	l.store.lock.Lock()
	defer l.store.lock.Unlock()

	records := make([]Record, len(l.store.records))
	copy(records, l.store.records)
	return records
}

// Messages returns the captured messages, in emission order.
func (l *Logger) Messages() []string {
	records := l.Records()
	messages := make([]string, 0, len(records))
	for _, record := range records {
		messages = append(messages, record.Message)
	}
	return messages
}

func (l *Logger) WithName(_ string) logger.Logger {
	return &Logger{store: l.store, args: l.args}
}

func (l *Logger) With(args ...interface{}) logger.Logger {
	combined := make([]interface{}, 0, len(l.args)+len(args))
	combined = append(combined, l.args...)
	combined = append(combined, args...)
	return &Logger{store: l.store, args: combined}
}

func (l *Logger) SetLevel(_ logger.Level) {}

// combined merges the permanent With arguments with the per-call ones.
func (l *Logger) combined(args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(l.args)+len(args))
	out = append(out, l.args...)
	return append(out, args...)
}

func (l *Logger) Trace(msg string, args ...interface{}) {
	l.store.append(logger.TRACE, msg, l.combined(args))
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.store.append(logger.DEBUG, msg, l.combined(args))
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.store.append(logger.INFO, msg, l.combined(args))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.store.append(logger.WARN, msg, l.combined(args))
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.store.append(logger.ERROR, msg, l.combined(args))
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.store.append(logger.FATAL, msg, l.combined(args))
}
