// File: format.go
// Title: Log Format Definitions
// Description: Output formats for log entries: JSON for machines, text and
//              colored console for terminals, logfmt for grep-friendly files.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with multiple output formats
// - 2026-10-19 v0.2.0: Deterministic field order in text and logfmt output
// - 2026-10-19 v0.3.0: Text, console and logfmt share one line builder

package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const colorReset = "\033[0m"

// Format selects a Formatter
type Format int

const (
	FormatJSON Format = iota
	FormatText
	FormatConsole
	FormatLogfmt
)

var formatNames = [...]string{
	FormatJSON:    "json",
	FormatText:    "text",
	FormatConsole: "console",
	FormatLogfmt:  "logfmt",
}

func (f Format) String() string {
	if f < FormatJSON || f > FormatLogfmt {
		return "unknown"
	}
	return formatNames[f]
}

// ParseFormat maps a config value to a Format
func ParseFormat(format string) (Format, error) {
	want := strings.ToLower(strings.TrimSpace(format))
	for f, name := range formatNames {
		if name == want {
			return Format(f), nil
		}
	}
	return FormatJSON, &ParseError{Input: format, Type: "format"}
}

// Formatter turns an entry into one output line
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// GetFormatter returns the formatter for f; unknown values get JSON
func GetFormatter(f Format) Formatter {
	switch f {
	case FormatText:
		return NewTextFormatter()
	case FormatConsole:
		return &ConsoleFormatter{TextFormatter: NewTextFormatter()}
	case FormatLogfmt:
		return &LogfmtFormatter{TimestampFormat: time.RFC3339}
	default:
		return NewJSONFormatter()
	}
}

// JSONFormatter writes one JSON object per line. Entry fields share the
// top level with timestamp, level and message.
type JSONFormatter struct {
	TimestampFormat string
}

// NewJSONFormatter creates a JSON formatter with RFC 3339 timestamps
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339}
}

func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+8)
	for k, v := range entry.Fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		data[k] = v
	}

	data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	setIf(data, "logger", entry.Logger)
	setIf(data, "request_id", entry.RequestID)
	setIf(data, "caller", entry.Caller)

	if entry.Error != nil {
		data["error"] = entry.Error.Error()
		if m, ok := entry.Error.(json.Marshaler); ok {
			if details, err := m.MarshalJSON(); err == nil {
				data["error_details"] = json.RawMessage(details)
			}
		}
	}
	if entry.Duration > 0 {
		data["duration_ms"] = millis(entry.Duration)
	}

	out, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// TextFormatter writes "15:04:05 [INF] {logger} message [k=v ...]"
type TextFormatter struct {
	TimestampFormat  string
	DisableTimestamp bool
}

// NewTextFormatter creates a text formatter with clock-time timestamps
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: "15:04:05"}
}

func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var line lineBuilder

	if !f.DisableTimestamp {
		line.add(entry.Timestamp.Format(f.TimestampFormat))
	}
	line.add("[" + entry.Level.ShortString() + "]")
	if entry.Logger != "" {
		line.add("{" + entry.Logger + "}")
	}
	if entry.RequestID != "" {
		line.add("(req=" + entry.RequestID + ")")
	}
	line.add(entry.Message)

	if len(entry.Fields) > 0 {
		fields := make([]string, 0, len(entry.Fields))
		for _, k := range entry.Fields.Keys() {
			fields = append(fields, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		line.add("[" + strings.Join(fields, " ") + "]")
	}
	if entry.Caller != "" {
		line.add("at=" + entry.Caller)
	}
	if entry.Error != nil {
		line.addf("error=%q", entry.Error.Error())
	}
	if entry.Duration > 0 {
		line.add("duration=" + entry.Duration.String())
	}

	return line.bytes(), nil
}

// ConsoleFormatter is the text format colored by level
type ConsoleFormatter struct {
	*TextFormatter
	DisableColors bool
}

func (f *ConsoleFormatter) Format(entry *Entry) ([]byte, error) {
	data, err := f.TextFormatter.Format(entry)
	if err != nil || f.DisableColors {
		return data, err
	}
	return []byte(entry.Level.Color() + strings.TrimSuffix(string(data), "\n") + colorReset + "\n"), nil
}

// LogfmtFormatter writes key=value pairs; string values are quoted
type LogfmtFormatter struct {
	TimestampFormat string
}

func (f *LogfmtFormatter) Format(entry *Entry) ([]byte, error) {
	var line lineBuilder

	line.add("timestamp=" + entry.Timestamp.Format(f.TimestampFormat))
	line.add("level=" + entry.Level.String())
	line.addf("message=%q", entry.Message)
	if entry.Logger != "" {
		line.add("logger=" + entry.Logger)
	}
	if entry.RequestID != "" {
		line.add("request_id=" + entry.RequestID)
	}
	for _, k := range entry.Fields.Keys() {
		if s, ok := entry.Fields[k].(string); ok {
			line.addf("%s=%q", k, s)
		} else {
			line.addf("%s=%v", k, entry.Fields[k])
		}
	}
	if entry.Caller != "" {
		line.add("caller=" + entry.Caller)
	}
	if entry.Error != nil {
		line.addf("error=%q", entry.Error.Error())
	}
	if entry.Duration > 0 {
		line.addf("duration_ms=%.3f", millis(entry.Duration))
	}

	return line.bytes(), nil
}

// lineBuilder joins parts with single spaces and ends the line
type lineBuilder struct {
	parts []string
}

func (b *lineBuilder) add(part string) {
	b.parts = append(b.parts, part)
}

func (b *lineBuilder) addf(format string, args ...interface{}) {
	b.parts = append(b.parts, fmt.Sprintf(format, args...))
}

func (b *lineBuilder) bytes() []byte {
	return []byte(strings.Join(b.parts, " ") + "\n")
}

func setIf(data map[string]interface{}, key, value string) {
	if value != "" {
		data[key] = value
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
