// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConsoleSinkName is the sink writing records to the process stdout.
	ConsoleSinkName = "console"
	// FileSinkName is the sink appending records to a local file.
	FileSinkName = "file"
	// HTTPSinkName is a sink shipping records to a remote collector. The
	// configuration recognizes it but this demonstration does not implement
	// the transport.
	HTTPSinkName = "http"

	// FilePathArg is the file sink argument holding the destination path.
	FilePathArg = "path"
	// ServerURLArg is the http sink argument holding the collector URL.
	ServerURLArg = "serverUrl"
)

var (
	// ErrParsing reports failures that occur while decoding the logging
	// configuration file.
	ErrParsing = errors.New("error parsing")
	// ErrInvalidConfig reports a decoded configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid logging configuration")

	// knownLevels holds the accepted severity names, case-insensitive.
	knownLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}
)

// Logging holds the logger configuration for the configured phase: minimum
// severity levels, record exclusion rules and output destinations.
type Logging struct {
	MinimumLevel MinimumLevel `json:"minimumLevel" yaml:"minimumLevel"`
	Exclude      []string     `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Sinks        []Sink       `json:"sinks" yaml:"sinks"`
}

// MinimumLevel holds the default minimum severity and the per-name overrides.
type MinimumLevel struct {
	Default  string            `json:"default" yaml:"default"`
	Override map[string]string `json:"override,omitempty" yaml:"override,omitempty"`
}

// Sink holds an output destination by name with its destination-specific
// arguments.
type Sink struct {
	Name string         `json:"name" yaml:"name"`
	Args map[string]any `json:"args,omitempty" yaml:"args,omitempty"`
}

// NewLoggingConfigFromPath loads and validates the logging configuration at
// path. The file can be JSON or YAML.
func NewLoggingConfigFromPath(path string) (*Logging, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrParsing, path, err)
	}
	defer file.Close()

	return newLoggingConfig(file)
}

// newLoggingConfig decodes and validates a logging configuration from reader.
func newLoggingConfig(reader io.Reader) (*Logging, error) {
	var logging Logging
	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(&logging); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParsing, err.Error())
	}

	if err := logging.validate(); err != nil {
		return nil, err
	}

	return &logging, nil
}

// validate collects every validation failure before reporting them together.
func (l *Logging) validate() error {
	errorsList := make([]string, 0)

	if l.MinimumLevel.Default != "" && !isKnownLevel(l.MinimumLevel.Default) {
		errorsList = append(errorsList, fmt.Sprintf("unknown default level '%s'", l.MinimumLevel.Default))
	}

	for name, level := range l.MinimumLevel.Override {
		if !isKnownLevel(level) {
			errorsList = append(errorsList, fmt.Sprintf("unknown level '%s' for override '%s'", level, name))
		}
	}

	for _, sink := range l.Sinks {
		errorsList = append(errorsList, sink.validate()...)
	}

	if len(errorsList) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errorsList, ", "))
	}
	return nil
}

// validate checks the sink name and its required arguments.
func (s *Sink) validate() []string {
	switch s.Name {
	case ConsoleSinkName:
		return nil
	case FileSinkName:
		if path, ok := s.Args[FilePathArg].(string); !ok || path == "" {
			return []string{fmt.Sprintf("missing argument '%s' for sink '%s'", FilePathArg, FileSinkName)}
		}
		return nil
	case HTTPSinkName:
		if serverURL, ok := s.Args[ServerURLArg].(string); !ok || serverURL == "" {
			return []string{fmt.Sprintf("missing argument '%s' for sink '%s'", ServerURLArg, HTTPSinkName)}
		}
		return nil
	case "":
		return []string{"sink without a name"}
	default:
		return []string{fmt.Sprintf("unknown sink '%s'", s.Name)}
	}
}

func isKnownLevel(level string) bool {
	for _, known := range knownLevels {
		if strings.EqualFold(level, known) {
			return true
		}
	}
	return false
}
