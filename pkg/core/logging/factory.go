// ============================================================================
// radscene - Radiance Scene Toolkit
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from config
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/msto63/radscene/foundation/core/log"
	"github.com/msto63/radscene/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Name of the logger, "radscene" for the CLI
	ServiceName string

	// Log level (trace, debug, info, warn, error); unknown values mean info
	Level string

	// Output format: "json", "text", "console" or "logfmt"; unknown values mean text
	Format string

	// Output defaults to stderr so stdout stays free for records
	Output io.Writer

	// AdditionalOutputs receive a copy of every line
	AdditionalOutputs []io.Writer

	// RequestID is attached to every entry when set
	RequestID string

	EnableCaller bool
}

// DefaultLoggerConfig returns info-level text logging
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
	}
}

// ConfigFromGeneral applies the [general] section over the defaults
func ConfigFromGeneral(serviceName string, general config.GeneralConfig) LoggerConfig {
	cfg := DefaultLoggerConfig(serviceName)
	if general.LogLevel != "" {
		cfg.Level = general.LogLevel
	}
	if general.LogFormat != "" {
		cfg.Format = general.LogFormat
	}
	return cfg
}

// NewLogger builds a foundation logger from cfg
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if len(cfg.AdditionalOutputs) > 0 {
		output = io.MultiWriter(append([]io.Writer{output}, cfg.AdditionalOutputs...)...)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatText
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:        parseLevel(cfg.Level),
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: cfg.EnableCaller,
	})
	if cfg.RequestID != "" {
		logger = logger.WithRequestID(cfg.RequestID)
	}
	return logger
}

// NewSimpleLogger creates a text logger on stderr
func NewSimpleLogger(serviceName string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

func parseLevel(level string) mdwlog.Level {
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelInfo
	}
	return parsed
}
