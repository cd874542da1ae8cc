// File: codes.go
// Title: Error Code Definitions
// Description: Standardized error codes for classifying failures in the
//              collaborators around the scene parser, with the category and
//              default severity of each code.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Replaced service codes with scene I/O codes
// - 2026-10-19 v0.3.0: Category and severity kept in one code table

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Input and output
	CodeFileRead      Code = "FILE_READ"
	CodeInvalidFormat Code = "INVALID_FORMAT"
	CodeRenderError   Code = "RENDER_ERROR"
	CodeWatchError    Code = "WATCH_ERROR"

	// Persistence
	CodeStoreError Code = "STORE_ERROR"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

type codeInfo struct {
	category string
	severity Severity
}

var codeTable = map[Code]codeInfo{
	CodeUnknown:       {"generic", SeverityMedium},
	CodeInternal:      {"generic", SeverityCritical},
	CodeNotFound:      {"input", SeverityLow},
	CodeInvalidInput:  {"input", SeverityLow},
	CodeFileRead:      {"io", SeverityHigh},
	CodeInvalidFormat: {"io", SeverityLow},
	CodeRenderError:   {"io", SeverityMedium},
	CodeWatchError:    {"io", SeverityMedium},
	CodeStoreError:    {"store", SeverityHigh},
	CodeConfigError:   {"configuration", SeverityMedium},
	CodeInvalidConfig: {"configuration", SeverityLow},
}

func (c Code) String() string {
	return string(c)
}

// IsValid reports whether c is one of the codes above
func (c Code) IsValid() bool {
	_, ok := codeTable[c]
	return ok
}

// Category groups codes for reporting: io, store, configuration, input or
// generic
func (c Code) Category() string {
	if info, ok := codeTable[c]; ok {
		return info.category
	}
	return "generic"
}

// GetSeverityFromCode returns the default severity of a code. Unknown codes
// are medium.
func GetSeverityFromCode(code Code) Severity {
	if info, ok := codeTable[code]; ok {
		return info.severity
	}
	return SeverityMedium
}
