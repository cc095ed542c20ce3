// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, contextual fields, formatter
//              output and the package default logger.
// Version: v0.1.0
// Created: 2025-02-10

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: buf,
		Name:   "test",
	})
	return logger, buf
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("should not appear")
	logger.Info("should not appear either")
	logger.Warn("warning message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("low-level entries leaked through filter:\n%s", out)
	}
	if !strings.Contains(out, "warning message") {
		t.Errorf("warn entry missing:\n%s", out)
	}
	if !strings.Contains(out, "error message") {
		t.Errorf("error entry missing:\n%s", out)
	}
}

func TestAuditBypassesFilter(t *testing.T) {
	logger, buf := newBufferLogger(LevelError, FormatText)

	logger.Audit("command executed")

	if !strings.Contains(buf.String(), "command executed") {
		t.Error("audit entry was filtered out")
	}
}

func TestWithFieldContext(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.WithField("component", "executor").Info("hello")

	if !strings.Contains(buf.String(), "component=executor") {
		t.Errorf("context field missing: %s", buf.String())
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	_ = logger.WithField("child", "only")
	logger.Info("parent entry")

	if strings.Contains(buf.String(), "child=only") {
		t.Error("child field leaked into parent logger")
	}
}

func TestJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	logger.WithRequestID("req-9").Info("hello", Fields{"app": "ls"})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if decoded["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", decoded["level"])
	}
	if decoded["message"] != "hello" {
		t.Errorf("message = %v, want hello", decoded["message"])
	}
	if decoded["request_id"] != "req-9" {
		t.Errorf("request_id = %v, want req-9", decoded["request_id"])
	}
	if decoded["app"] != "ls" {
		t.Errorf("app = %v, want ls", decoded["app"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"Warning", LevelWarn, false},
		{"audit", LevelAudit, false},
		{"nope", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestErrorWithErr(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.ErrorWithErr("lookup failed", errTest)

	if !strings.Contains(buf.String(), `error="test failure"`) {
		t.Errorf("error field missing: %s", buf.String())
	}
}

var errTest = testError("test failure")

type testError string

func (e testError) Error() string { return string(e) }

func TestDefaultLogger(t *testing.T) {
	old := GetDefault()
	defer SetDefault(old)

	logger, buf := newBufferLogger(LevelInfo, FormatText)
	SetDefault(logger)

	Info("via default")

	if !strings.Contains(buf.String(), "via default") {
		t.Error("default logger did not receive entry")
	}
}
