// File: pattern_test.go
// Title: Pattern Matcher Tests
// Version: v0.1.0
// Created: 2025-02-10

package app

import (
	"testing"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
)

func TestNewPatternAbsentMatchesEverything(t *testing.T) {
	p, err := NewPattern("", false)
	if err != nil {
		t.Fatalf("NewPattern(absent) error: %v", err)
	}
	if p != nil {
		t.Fatal("NewPattern(absent) should return a nil pattern")
	}

	if !Matches(nil, "anything at all", false, true) {
		t.Error("nil pattern must match everything, even exact")
	}
	if !Matches(nil, "", true, false) {
		t.Error("nil pattern must match the empty string")
	}
}

func TestMatchesSubstring(t *testing.T) {
	p, err := NewPattern("Name", false)
	if err != nil {
		t.Fatalf("NewPattern error: %v", err)
	}

	if !Matches(p, "my-name-here", false, false) {
		t.Error("case-insensitive substring match should succeed")
	}
	if !Matches(p, "Name", false, false) {
		t.Error("substring match against equal value should succeed")
	}
	if Matches(p, "nope", false, false) {
		t.Error("non-matching value should fail")
	}
}

func TestMatchesExact(t *testing.T) {
	p, err := NewPattern("Name", false)
	if err != nil {
		t.Fatalf("NewPattern error: %v", err)
	}

	if !Matches(p, "Name", false, true) {
		t.Error("exact match against the folded pattern should succeed")
	}
	if Matches(p, "my-name-here", false, true) {
		t.Error("exact match must not accept a substring hit")
	}
}

func TestMatchesCaseSensitive(t *testing.T) {
	p, err := NewPattern("Name", true)
	if err != nil {
		t.Fatalf("NewPattern error: %v", err)
	}

	if !Matches(p, "myNameHere", true, false) {
		t.Error("case-sensitive substring with matching case should succeed")
	}
	if Matches(p, "my-name-here", true, false) {
		t.Error("case-sensitive match must reject differing case")
	}
}

func TestMatchesRegexSyntax(t *testing.T) {
	// The pattern grammar is delegated to the regexp engine
	p, err := NewPattern("na.e", false)
	if err != nil {
		t.Fatalf("NewPattern error: %v", err)
	}

	if !Matches(p, "NAME", false, true) {
		t.Error("regex metacharacters should apply after case folding")
	}
	if !Matches(p, "a nape here", false, false) {
		t.Error("regex substring should match")
	}
}

func TestMatchesExactAlternation(t *testing.T) {
	// Exact match must cover the whole value even for alternations
	p, err := NewPattern("ab|abc", false)
	if err != nil {
		t.Fatalf("NewPattern error: %v", err)
	}

	if !Matches(p, "abc", false, true) {
		t.Error("exact match should accept the longer alternative")
	}
	if Matches(p, "abcd", false, true) {
		t.Error("exact match must not accept trailing text")
	}
}

func TestNewPatternMalformed(t *testing.T) {
	_, err := NewPattern("[unclosed", false)
	if err == nil {
		t.Fatal("malformed pattern must fail at build time")
	}
	if !gdsherror.HasCode(err, gdsherror.CodeInvalidArgument) {
		t.Errorf("error code = %v, want %v", gdsherror.GetCode(err), gdsherror.CodeInvalidArgument)
	}
}
