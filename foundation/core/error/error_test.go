// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              metadata propagation.
// Version: v0.1.0
// Created: 2025-02-10

package error

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}

	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}

	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}

	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}

	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}

	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("node %d not found", 42)
	if err.Error() != "node 42 not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "node 42 not found")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:    "wrap standard error",
			err:     errors.New("original error"),
			message: "wrapper message",
			wantMsg: "wrapper message: original error",
		},
		{
			name:    "wrap gdsh error",
			err:     New("inner").WithCode(CodeNotFound),
			message: "outer",
			wantMsg: "outer: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)

			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}

			if wrapped == nil {
				t.Fatal("Wrap() returned nil")
			}

			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}
		})
	}
}

func TestWrapPreservesCode(t *testing.T) {
	inner := New("stale reference").WithCode(CodeNotFound)
	wrapped := Wrap(inner, "current node lookup failed")

	if wrapped.Code() != CodeNotFound {
		t.Errorf("Code() = %v, want %v", wrapped.Code(), CodeNotFound)
	}

	if !errors.Is(wrapped, inner) {
		t.Error("errors.Is should match the wrapped cause")
	}
}

func TestWrapPreservesDetails(t *testing.T) {
	inner := New("boom").WithDetail("nodeID", int64(7))
	wrapped := Wrap(inner, "outer")

	details := wrapped.Details()
	if details["nodeID"] != int64(7) {
		t.Errorf("Details()[nodeID] = %v, want 7", details["nodeID"])
	}
}

func TestWithCode(t *testing.T) {
	err := New("transport down").WithCode(CodeTransport)

	if err.Code() != CodeTransport {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeTransport)
	}

	// Severity auto-derives from the code when not explicitly set
	if err.Severity() != SeverityHigh {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityHigh)
	}
}

func TestWithSeverityExplicit(t *testing.T) {
	err := New("minor").WithSeverity(SeverityLow).WithCode(CodeTransport)

	if err.Severity() != SeverityLow {
		t.Errorf("explicit severity overridden: got %v, want %v",
			err.Severity(), SeverityLow)
	}
}

func TestHasCode(t *testing.T) {
	inner := New("inner").WithCode(CodeNotFound)
	outer := Wrap(inner, "outer").WithCode(CodeInternal)

	if !HasCode(outer, CodeInternal) {
		t.Error("HasCode(outer, CodeInternal) = false, want true")
	}

	if !HasCode(outer, CodeNotFound) {
		t.Error("HasCode should unwrap to find inner codes")
	}

	if HasCode(outer, CodeTransport) {
		t.Error("HasCode(outer, CodeTransport) = true, want false")
	}

	if HasCode(errors.New("plain"), CodeNotFound) {
		t.Error("HasCode on plain error should be false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New("x").WithCode(CodeSyntax)); got != CodeSyntax {
		t.Errorf("GetCode() = %v, want %v", got, CodeSyntax)
	}

	if got := GetCode(errors.New("plain")); got != CodeUnknown {
		t.Errorf("GetCode(plain) = %v, want %v", got, CodeUnknown)
	}
}

func TestRootCause(t *testing.T) {
	root := errors.New("root")
	wrapped := Wrap(Wrap(root, "middle"), "top")

	if wrapped.RootCause() != root {
		t.Errorf("RootCause() = %v, want %v", wrapped.RootCause(), root)
	}
}

func TestString(t *testing.T) {
	err := New("boom").
		WithCode(CodeDatabase).
		WithOperation("node-by-id").
		WithDetail("nodeID", 3)

	s := err.String()
	for _, want := range []string{"Error: boom", "Code: DATABASE", "Operation: node-by-id", "nodeID=3"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("boom").WithCode(CodeTransport).WithRequestID("req-1")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal failed: %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("Unmarshal failed: %v", jerr)
	}

	if decoded["code"] != "TRANSPORT" {
		t.Errorf("code = %v, want TRANSPORT", decoded["code"])
	}

	if decoded["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", decoded["request_id"])
	}
}
