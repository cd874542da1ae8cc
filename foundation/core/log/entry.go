// File: entry.go
// Title: Log Entry Structure
// Description: A single log entry with metadata, contextual fields, error and
//              duration, plus the Fields map used at call sites.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive log entry structure
// - 2026-10-19 v0.2.0: Removed user/correlation IDs
// - 2026-10-19 v0.3.0: Dropped single-field constructors

package log

import (
	"sort"
	"time"
)

// Entry is one log record as handed to a Formatter
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	RequestID string

	Fields   Fields
	Error    error
	Duration time.Duration

	// Caller is "file:line", set when the logger has caller reporting on
	Caller string
}

// Fields are key/value pairs attached to an entry
type Fields map[string]interface{}

// Merge returns a new map holding f and other; other wins on conflicts
func (f Fields) Merge(other Fields) Fields {
	result := make(Fields, len(f)+len(other))
	for _, src := range []Fields{f, other} {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

// Keys returns the field names in sorted order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newEntry(level Level, message string, fieldSets ...Fields) *Entry {
	entry := &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
	for _, set := range fieldSets {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}
	return entry
}
