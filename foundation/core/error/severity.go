// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to pick the log level of an error.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Severity mapping for scene I/O codes
// - 2026-10-19 v0.3.0: Code mapping moved to the code table

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates bad user input such as an unknown output format
	SeverityLow Severity = iota

	// SeverityMedium indicates a failed operation the user can retry
	SeverityMedium

	// SeverityHigh indicates a failure of a backing resource (store, file system)
	SeverityHigh

	// SeverityCritical indicates the process cannot continue
	SeverityCritical
)

var severityNames = [...]string{"low", "medium", "high", "critical"}

func (s Severity) String() string {
	if s < SeverityLow || s > SeverityCritical {
		return "unknown"
	}
	return severityNames[s]
}
