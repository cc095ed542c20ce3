// File: level.go
// Title: Log Level Definitions
// Description: Defines log levels for the gdsh logging system with
//              parsing and comparison helpers.
// Version: v0.1.0
// Created: 2025-02-10

package log

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log entry
type Level int

const (
	// LevelTrace is the most verbose level, used for very detailed debugging
	LevelTrace Level = iota

	// LevelDebug provides detailed information for debugging purposes
	LevelDebug

	// LevelInfo represents general informational messages
	LevelInfo

	// LevelWarn indicates potentially harmful situations
	LevelWarn

	// LevelError represents error conditions that need attention
	LevelError

	// LevelAudit represents audit trail events such as command execution
	LevelAudit
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelAudit:
		return "AUDIT"
	default:
		return "UNKNOWN"
	}
}

// ShouldLog reports whether an entry at this level passes minLevel.
// Audit entries are always logged.
func (l Level) ShouldLog(minLevel Level) bool {
	if l == LevelAudit {
		return true
	}
	return l >= minLevel
}

// ParseLevel parses a level name (case-insensitive) into a Level
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "AUDIT":
		return LevelAudit, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %q", level)
	}
}

// AllLevels returns all defined levels in ascending order
func AllLevels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelAudit}
}

// DefaultLevel returns the default level for production use
func DefaultLevel() Level {
	return LevelInfo
}
