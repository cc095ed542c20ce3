// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for gdsh errors and the mapping
//              from error codes to their default severity.
// Version: v0.1.0
// Created: 2025-02-10

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a minor error that doesn't affect core functionality
	// Examples: invalid user input, unknown command token
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects a single invocation
	// Examples: stale node reference, syntax error in a command line
	SeverityMedium

	// SeverityHigh indicates a serious error that impacts shell operation
	// Examples: store access failures, remote transport faults
	SeverityHigh

	// SeverityCritical indicates an error that makes the shell unusable
	// Examples: store corruption, configuration that cannot be loaded
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeConfig:
		return SeverityCritical
	case CodeDatabase, CodeTransport, CodeInternal:
		return SeverityHigh
	case CodeNotFound, CodeSyntax, CodeTimeout:
		return SeverityMedium
	case CodeInvalidArgument, CodeUnknownApp:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
