// File: entry.go
// Title: Log Entry and Fields
// Description: Defines the Entry type that carries a single log record
//              and the Fields map used for structured context.
// Version: v0.1.0
// Created: 2025-02-10

package log

import "time"

// Entry represents a single log entry with all its metadata
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string

	RequestID string
	SessionID string

	Fields Fields

	Error error
}

// Fields represents custom key-value pairs attached to a log entry
type Fields map[string]interface{}

// Field creates a Fields map with a single key-value pair
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates a Fields map carrying an error
func Err(err error) Fields {
	return Fields{"error": err}
}

// merge combines multiple Fields maps into one, later maps win
func merge(fields ...Fields) Fields {
	result := make(Fields)
	for _, f := range fields {
		for k, v := range f {
			result[k] = v
		}
	}
	return result
}
