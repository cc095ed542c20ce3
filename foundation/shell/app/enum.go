// File: enum.go
// Title: Generic Enum Resolver
// Description: Resolves tokens against closed enumerations supplied as
//              explicit ordered member lists, with case-insensitive
//              exact matching and a declaration-order prefix fallback.
// Version: v0.1.0
// Created: 2025-02-10

package app

import (
	"strings"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
)

// Member pairs an enumeration member name with its value. Enumerations
// are supplied as explicit ordered slices so the prefix-fallback order
// is visible at the declaration site rather than hidden in reflection.
type Member[T any] struct {
	Name  string
	Value T
}

// ResolveEnum resolves a token against an ordered member list. An
// empty token yields def. Pass 1 is a case-insensitive exact match
// over all members; pass 2 accepts the first declared member whose
// lower-cased name starts with the lower-cased token. The first-match
// tie-break on shared prefixes is deliberate and order-dependent.
func ResolveEnum[T any](members []Member[T], token string, def T) (T, error) {
	if token == "" {
		return def, nil
	}

	lowered := strings.ToLower(token)

	for _, m := range members {
		if strings.ToLower(m.Name) == lowered {
			return m.Value, nil
		}
	}

	for _, m := range members {
		if strings.HasPrefix(strings.ToLower(m.Name), lowered) {
			return m.Value, nil
		}
	}

	return def, gdsherror.Newf("no '%s' or '%s*' in %s", token, token, memberNames(members)).
		WithCode(gdsherror.CodeInvalidArgument).
		WithOperation("resolve-enum")
}

// memberNames renders the member list for operator feedback
func memberNames[T any](members []Member[T]) string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}
