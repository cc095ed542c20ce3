// Package error provides structured error handling for gdsh.
//
// Package: error
// Title: gdsh Error Handling
// Description: Implements a structured error type with codes, severity
//              levels and contextual details. The shell layer classifies
//              every failure through this package: operator input errors,
//              stale node references, store failures and remote transport
//              faults all surface as *Error values with a Code.
// Version: v0.1.0
// Created: 2025-02-10
//
// Usage:
//
//	err := error.New("unknown direction sideways").
//		WithCode(error.CodeInvalidArgument).
//		WithOperation("resolve-direction")
//
//	if error.HasCode(err, error.CodeInvalidArgument) {
//		// render feedback to the operator
//	}
package error
