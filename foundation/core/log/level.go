// File: level.go
// Title: Log Level Definitions
// Description: Log levels for filtering output, with parsing from config
//              strings and short/colored representations for text output.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2026-10-19 v0.2.0: Trimmed helpers to what the CLI uses
// - 2026-10-19 v0.3.0: Level names, aliases and colors in one table

package log

import (
	"strings"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace is the most verbose level (per-segment parser output)
	LevelTrace Level = iota

	// LevelDebug covers timers and skipped segments
	LevelDebug

	// LevelInfo is the CLI default
	LevelInfo

	LevelWarn
	LevelError
	LevelFatal

	// LevelAudit is always written regardless of the minimum level
	LevelAudit
)

type levelInfo struct {
	name    string
	short   string
	color   string
	aliases []string
}

var levels = [...]levelInfo{
	LevelTrace: {"trace", "TRC", "\033[37m", []string{"trc"}},
	LevelDebug: {"debug", "DBG", "\033[36m", []string{"dbg"}},
	LevelInfo:  {"info", "INF", "\033[32m", []string{"inf", "information"}},
	LevelWarn:  {"warn", "WRN", "\033[33m", []string{"wrn", "warning"}},
	LevelError: {"error", "ERR", "\033[31m", []string{"err"}},
	LevelFatal: {"fatal", "FTL", "\033[35m", []string{"ftl"}},
	LevelAudit: {"audit", "AUD", "\033[34m", []string{"aud"}},
}

func (l Level) info() (levelInfo, bool) {
	if l < LevelTrace || l > LevelAudit {
		return levelInfo{name: "unknown", short: "???", color: colorReset}, false
	}
	return levels[l], true
}

// String returns the lower-case level name
func (l Level) String() string {
	info, _ := l.info()
	return info.name
}

// ShortString returns the three-letter tag used by the text formats
func (l Level) ShortString() string {
	info, _ := l.info()
	return info.short
}

// Color returns the ANSI color code used by the console format
func (l Level) Color() string {
	info, _ := l.info()
	return info.color
}

// ShouldLog reports whether l passes the minimum level. Audit always does.
func (l Level) ShouldLog(minLevel Level) bool {
	return l == LevelAudit || l >= minLevel
}

// ParseLevel accepts a level name or one of its aliases, case-insensitive
func ParseLevel(level string) (Level, error) {
	want := strings.ToLower(strings.TrimSpace(level))
	for l, info := range levels {
		if info.name == want {
			return Level(l), nil
		}
		for _, alias := range info.aliases {
			if alias == want {
				return Level(l), nil
			}
		}
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// ParseError reports a level or format name that is not known
type ParseError struct {
	Input string
	Type  string
}

func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}
