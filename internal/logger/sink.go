// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Sink is a destination for serialized log records. Flush blocks until every
// record written before the call has reached the underlying destination.
// Close flushes any pending records before releasing the sink.
type Sink interface {
	io.Writer

	Flush() error
	Close() error
}

// consoleSink writes records synchronously to a stream. Flush is a no-op
// because nothing is buffered.
type consoleSink struct {
	writer io.Writer

	lock sync.Mutex
}

// NewConsoleSink returns a sink writing every record directly to w.
func NewConsoleSink(w io.Writer) Sink {
	return &consoleSink{writer: w}
}

func (s *consoleSink) Write(p []byte) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.writer.Write(p)
}

func (s *consoleSink) Flush() error {
	return nil
}

func (s *consoleSink) Close() error {
	return nil
}

// fileSink appends records to a file and fsyncs on flush.
type fileSink struct {
	file *os.File

	lock sync.Mutex
}

// NewFileSink opens path in append mode, creating the file and its parent
// directory when missing.
func NewFileSink(path string) (Sink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("log file %q: %w", path, err)
		}
	}

	file, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("log file %q: %w", path, err)
	}

	return &fileSink{file: file}, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.file.Write(p)
}

func (s *fileSink) Flush() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.file.Sync()
}

func (s *fileSink) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.file.Sync(); err != nil {
		return errors.Join(err, s.file.Close())
	}
	return s.file.Close()
}

// multiSink fans every record out to all the configured sinks.
type multiSink struct {
	sinks []Sink
}

// NewMultiSink returns a sink duplicating every record on all sinks.
func NewMultiSink(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (s *multiSink) Write(p []byte) (int, error) {
	var errs []error
	for _, sink := range s.sinks {
		if _, err := sink.Write(p); err != nil {
			errs = append(errs, err)
		}
	}
	return len(p), errors.Join(errs...)
}

func (s *multiSink) Flush() error {
	var errs []error
	for _, sink := range s.sinks {
		errs = append(errs, sink.Flush())
	}
	return errors.Join(errs...)
}

func (s *multiSink) Close() error {
	var errs []error
	for _, sink := range s.sinks {
		errs = append(errs, sink.Close())
	}
	return errors.Join(errs...)
}

// bufferedSink queues records on a channel and hands them to the inner sink
// from a dedicated goroutine. Flush blocks the caller until every previously
// queued record has been written and the inner sink has been flushed.
type bufferedSink struct {
	inner   Sink
	records chan []byte
	flushes chan chan error

	closeOnce sync.Once
	closeErr  error
}

// NewBufferedSink wraps inner with an asynchronous queue of the given size.
func NewBufferedSink(inner Sink, size int) Sink {
	s := &bufferedSink{
		inner:   inner,
		records: make(chan []byte, size),
		flushes: make(chan chan error),
	}
	go s.drain()
	return s
}

func (s *bufferedSink) Write(p []byte) (int, error) {
	// hclog reuses its internal buffer between records
	record := make([]byte, len(p))
	copy(record, p)
	s.records <- record
	return len(p), nil
}

func (s *bufferedSink) Flush() error {
	ack := make(chan error, 1)
	s.flushes <- ack
	return <-ack
}

func (s *bufferedSink) Close() error {
	s.closeOnce.Do(func() {
		flushErr := s.Flush()
		close(s.flushes)
		s.closeErr = errors.Join(flushErr, s.inner.Close())
	})
	return s.closeErr
}

// drain owns every write against the inner sink. It exits when the flush
// channel is closed during Close.
func (s *bufferedSink) drain() {
	for {
		select {
		case record := <-s.records:
			_, _ = s.inner.Write(record)
		case ack, ok := <-s.flushes:
			if !ok {
				return
			}
			s.drainQueued()
			ack <- s.inner.Flush()
		}
	}
}

// drainQueued writes every record queued before the flush request.
func (s *bufferedSink) drainQueued() {
	for {
		select {
		case record := <-s.records:
			_, _ = s.inner.Write(record)
		default:
			return
		}
	}
}
