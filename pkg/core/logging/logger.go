// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     logging
// Description: Key/value logger used by the scene collaborators
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	mdwlog "github.com/msto63/radscene/foundation/core/log"
)

// Logger wraps the foundation logger with key/value logging methods:
//
//	logger.Info("Source read", "path", path, "bytes", n)
type Logger struct {
	*mdwlog.Logger
	name string
}

// New creates a key/value logger on stderr
func New(name string) *Logger {
	return &Logger{Logger: NewSimpleLogger(name), name: name}
}

// Wrap names an existing foundation logger; nil means the package default
func Wrap(logger *mdwlog.Logger, name string) *Logger {
	if logger == nil {
		logger = mdwlog.GetDefault()
	}
	return &Logger{Logger: logger.WithName(name), name: name}
}

// Name returns the component name
func (l *Logger) Name() string {
	return l.name
}

// WithLevel returns a copy with a different minimum level
func (l *Logger) WithLevel(level mdwlog.Level) *Logger {
	return &Logger{Logger: l.Logger.WithLevel(level), name: l.name}
}

// With returns a copy that adds the pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.WithFields(toFields(keysAndValues...)), name: l.name}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields pairs up keys and values. Non-string keys and a trailing key
// without value are dropped.
func toFields(keysAndValues ...interface{}) mdwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(mdwlog.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
