// File: pattern.go
// Title: Pattern Matcher
// Description: Builds compiled text patterns from raw strings plus a
//              case-sensitivity flag and evaluates them under exact or
//              substring match policy. The pattern grammar itself is
//              the regexp engine's; this layer owns only case folding
//              and the match policy.
// Version: v0.1.0
// Created: 2025-02-10

package app

import (
	"regexp"
	"strings"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
)

// Pattern is a compiled, immutable matcher. A nil *Pattern means "no
// pattern" and matches everything.
type Pattern struct {
	re    *regexp.Regexp
	whole *regexp.Regexp
}

// foldCase lowercases the string when matching case-insensitively
func foldCase(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// NewPattern compiles a raw pattern string. An empty raw string yields
// a nil pattern. A malformed pattern fails here with InvalidArgument,
// never later at match time.
func NewPattern(raw string, caseSensitive bool) (*Pattern, error) {
	if raw == "" {
		return nil, nil
	}

	folded := foldCase(raw, caseSensitive)

	re, err := regexp.Compile(folded)
	if err != nil {
		return nil, gdsherror.Wrapf(err, "invalid pattern %q", raw).
			WithCode(gdsherror.CodeInvalidArgument).
			WithOperation("compile-pattern")
	}

	// The anchored form backs the exact-match policy; it compiles
	// whenever the unanchored form does
	whole, err := regexp.Compile("^(?:" + folded + ")$")
	if err != nil {
		return nil, gdsherror.Wrapf(err, "invalid pattern %q", raw).
			WithCode(gdsherror.CodeInvalidArgument).
			WithOperation("compile-pattern")
	}

	return &Pattern{re: re, whole: whole}, nil
}

// Matches evaluates a pattern against a value. A nil pattern always
// matches. The value's case is folded to match the pattern's folding;
// exact requires the whole folded value to match, otherwise any
// matching substring suffices.
func Matches(p *Pattern, value string, caseSensitive, exact bool) bool {
	if p == nil {
		return true
	}

	value = foldCase(value, caseSensitive)
	if exact {
		return p.whole.MatchString(value)
	}
	return p.re.MatchString(value)
}
