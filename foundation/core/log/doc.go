// Package log provides structured, leveled logging for gdsh.
//
// Package: log
// Title: gdsh Logging
// Description: A small structured logger with contextual fields, text
//              and JSON formatters, per-request and per-session binding
//              and an audit level for command execution trails.
// Version: v0.1.0
// Created: 2025-02-10
//
// Usage:
//
//	logger := log.New().WithName("executor").WithSessionID(sessionID)
//	logger.Info("command executed", log.Fields{"app": "ls"})
package log
