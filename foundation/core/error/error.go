// File: error.go
// Title: Core Error Implementation
// Description: Implements the Error type with code, severity, details and the
//              failing operation. Compatible with errors.Is/As through Unwrap.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors
// - 2026-10-19 v0.2.0: Removed stack trace pooling and localization keys
// - 2026-10-19 v0.3.0: Request IDs and timestamps left to the logger

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxErrorChainDepth limits how deep Wrap keeps nesting errors
const MaxErrorChainDepth = 15

// Error is an error with a code, severity, details and the operation that
// failed. Builder methods modify the receiver and return it.
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	operation string
	details   map[string]interface{}

	// severitySet stops WithCode from overriding WithSeverity
	severitySet bool
}

// New creates an uncoded error of medium severity
func New(message string) *Error {
	return &Error{
		message:  message,
		code:     CodeUnknown,
		severity: SeverityMedium,
		details:  map[string]interface{}{},
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap adds message in front of err. A wrapped *Error passes on its code,
// severity and details. Chains deeper than MaxErrorChainDepth are cut and
// keep only the root message.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := New(message)
	var inner *Error
	if errors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
		wrapped.severitySet = inner.severitySet
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}

	depth, root := 0, err
	for current := err; current != nil; current = errors.Unwrap(current) {
		depth++
		root = current
	}
	if depth < MaxErrorChainDepth {
		wrapped.cause = err
		return wrapped
	}

	wrapped.message = fmt.Sprintf("%s (chain truncated at depth %d): %s", message, MaxErrorChainDepth, root.Error())
	wrapped.severity = SeverityHigh
	wrapped.details["truncated"] = true
	wrapped.details["original_depth"] = depth
	return wrapped
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the code and, unless WithSeverity was called, the severity
// that belongs to it
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	if !e.severitySet {
		e.severity = GetSeverityFromCode(code)
	}
	return e
}

// WithSeverity fixes the severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	e.severitySet = true
	return e
}

// WithDetail attaches a key/value detail such as the failing path
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithOperation names the operation that failed, e.g. "source.Read"
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

func (e *Error) Code() Code         { return e.code }
func (e *Error) Severity() Severity { return e.severity }
func (e *Error) Operation() string  { return e.operation }

// Details returns a copy of the details
func (e *Error) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

// String returns a multi-line report with sorted details
func (e *Error) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\nCode: %s\nSeverity: %s", e.message, e.code, e.severity)

	if e.operation != "" {
		fmt.Fprintf(&b, "\nOperation: %s", e.operation)
	}
	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%v", k, e.details[k])
		}
		fmt.Fprintf(&b, "\nDetails: {%s}", strings.Join(pairs, ", "))
	}
	if e.cause != nil {
		fmt.Fprintf(&b, "\nCause: %s", e.cause)
	}
	return b.String()
}

type errorJSON struct {
	Message   string                 `json:"message"`
	Code      Code                   `json:"code"`
	Severity  string                 `json:"severity"`
	Operation string                 `json:"operation,omitempty"`
	Details   map[string]interface{} `json:"details"`
	Cause     string                 `json:"cause,omitempty"`
}

// MarshalJSON lets JSON log entries carry the error as an object
func (e *Error) MarshalJSON() ([]byte, error) {
	out := errorJSON{
		Message:   e.message,
		Code:      e.code,
		Severity:  e.severity.String(),
		Operation: e.operation,
		Details:   e.details,
	}
	if e.cause != nil {
		out.Cause = e.cause.Error()
	}
	return json.Marshal(out)
}

// HasCode reports whether any *Error in the chain carries code
func HasCode(err error, code Code) bool {
	var coded *Error
	for err != nil && errors.As(err, &coded) {
		if coded.code == code {
			return true
		}
		err = coded.cause
	}
	return false
}

// GetCode returns the code of the outermost *Error, or CodeUnknown
func GetCode(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code
	}
	return CodeUnknown
}
