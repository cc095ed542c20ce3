// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error
//              classification across gdsh. The codes drive severity
//              defaults, shell feedback formatting and wire responses.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial set of shell error codes

package error

// Code represents a structured error code for categorizing errors
type Code string

// Core error codes for gdsh
const (
	// Generic codes
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL"
	CodeTimeout  Code = "TIMEOUT"

	// Operator input
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeSyntax          Code = "SYNTAX"
	CodeUnknownApp      Code = "UNKNOWN_APP"

	// Graph store
	CodeNotFound Code = "NOT_FOUND"
	CodeDatabase Code = "DATABASE"

	// Remote boundary
	CodeTransport Code = "TRANSPORT"

	// Configuration
	CodeConfig Code = "CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeTimeout,
		CodeInvalidArgument, CodeSyntax, CodeUnknownApp,
		CodeNotFound, CodeDatabase,
		CodeTransport,
		CodeConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInvalidArgument, CodeSyntax, CodeUnknownApp:
		return "input"
	case CodeNotFound, CodeDatabase:
		return "store"
	case CodeTransport:
		return "transport"
	case CodeConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// IsRetriable reports whether an operation failing with this code could
// ever succeed on retry. The shell itself never retries; this exists for
// callers embedding gdsh that want to make that call themselves.
func (c Code) IsRetriable() bool {
	switch c {
	case CodeTransport, CodeTimeout:
		return true
	default:
		return false
	}
}
