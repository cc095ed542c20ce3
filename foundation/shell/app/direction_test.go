// File: direction_test.go
// Title: Direction Resolver Tests
// Version: v0.1.0
// Created: 2025-02-10

package app

import (
	"strings"
	"testing"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/graph"
)

func TestResolveDirection(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		def     graph.Direction
		want    graph.Direction
		wantErr bool
	}{
		{"full name outgoing", "OUTGOING", graph.Incoming, graph.Outgoing, false},
		{"full name incoming", "INCOMING", graph.Outgoing, graph.Incoming, false},
		{"lowercase full name", "outgoing", graph.Incoming, graph.Outgoing, false},
		{"mixed case full name", "InComing", graph.Outgoing, graph.Incoming, false},
		{"abbreviation o", "o", graph.Incoming, graph.Outgoing, false},
		{"abbreviation i", "i", graph.Outgoing, graph.Incoming, false},
		{"uppercase abbreviation", "I", graph.Outgoing, graph.Incoming, false},
		{"absent token yields default", "", graph.Incoming, graph.Incoming, false},
		{"unknown token", "sideways", graph.Outgoing, graph.Outgoing, true},
		{"partial name is not accepted", "out", graph.Outgoing, graph.Outgoing, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveDirection(tt.token, tt.def)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveDirection(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("ResolveDirection(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestResolveDirectionErrorMessage(t *testing.T) {
	_, err := ResolveDirection("sideways", graph.Outgoing)
	if err == nil {
		t.Fatal("expected error for unknown direction")
	}

	if !gdsherror.HasCode(err, gdsherror.CodeInvalidArgument) {
		t.Errorf("error code = %v, want %v", gdsherror.GetCode(err), gdsherror.CodeInvalidArgument)
	}

	// The message must enumerate the accepted alternatives
	if !strings.Contains(err.Error(), "OUTGOING, INCOMING, o, i") {
		t.Errorf("error message %q should list the accepted alternatives", err.Error())
	}
	if !strings.Contains(err.Error(), "sideways") {
		t.Errorf("error message %q should name the rejected token", err.Error())
	}
}

func TestResolveDirectionDefault(t *testing.T) {
	got, err := ResolveDirectionDefault("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != graph.Outgoing {
		t.Errorf("single-argument default = %v, want OUTGOING", got)
	}
}
