// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package service

import (
	"errors"
	"fmt"
	"os"

	"github.com/datalust/go-fiber-logging-example/internal/config"
	"github.com/datalust/go-fiber-logging-example/internal/logger"
)

var (
	// ErrUnsupportedSink reports a configured sink this demonstration cannot
	// construct.
	ErrUnsupportedSink = errors.New("unsupported sink")
)

// buildLogger assembles the configured logger and its sink stack from the
// loaded configuration. The returned sink is the one to hand to the logger
// handle: a buffered queue fanning out to every configured destination.
func buildLogger(loggingConfig *config.Logging) (logger.Logger, logger.Sink, error) {
	sinks := make([]logger.Sink, 0, len(loggingConfig.Sinks))
	for _, sinkConfig := range loggingConfig.Sinks {
		sink, err := buildSink(sinkConfig)
		if err != nil {
			closeSinks(sinks)
			return nil, nil, err
		}
		sinks = append(sinks, sink)
	}

	buffered := logger.NewBufferedSink(logger.NewMultiSink(sinks...), recordQueueSize)

	overrides := make(map[string]logger.Level, len(loggingConfig.MinimumLevel.Override))
	for name, level := range loggingConfig.MinimumLevel.Override {
		overrides[name] = logger.LevelFromString(level)
	}

	configured := logger.NewConfiguredLogger(logger.Options{
		MinimumLevel:    logger.LevelFromString(loggingConfig.MinimumLevel.Default),
		LevelOverrides:  overrides,
		ExcludeMessages: loggingConfig.Exclude,
		Output:          buffered,
	})

	return configured, buffered, nil
}

// buildSink constructs a single destination. Collector sinks are recognized
// by the configuration but have no transport here and fail construction.
func buildSink(sinkConfig config.Sink) (logger.Sink, error) {
	switch sinkConfig.Name {
	case config.ConsoleSinkName:
		return logger.NewConsoleSink(os.Stdout), nil
	case config.FileSinkName:
		path, _ := sinkConfig.Args[config.FilePathArg].(string)
		return logger.NewFileSink(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSink, sinkConfig.Name)
	}
}

func closeSinks(sinks []logger.Sink) {
	for _, sink := range sinks {
		_ = sink.Close()
	}
}
