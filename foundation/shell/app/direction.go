// File: direction.go
// Title: Direction Resolver
// Description: Resolves operator-supplied direction tokens into graph
//              traversal directions, accepting full names and the
//              single-letter abbreviations o and i.
// Version: v0.1.0
// Created: 2025-02-10

package app

import (
	"strings"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/graph"
)

// directionAlternatives enumerates the accepted direction tokens for
// operator feedback
const directionAlternatives = "OUTGOING, INCOMING, o, i"

// ResolveDirectionDefault resolves a direction token with Outgoing as
// the default for an absent token
func ResolveDirectionDefault(token string) (graph.Direction, error) {
	return ResolveDirection(token, graph.Outgoing)
}

// ResolveDirection resolves a direction token. An empty token yields
// def; full names match case-insensitively; "o" and "i" are accepted
// abbreviations. Anything else fails with an error enumerating the
// accepted alternatives.
func ResolveDirection(token string, def graph.Direction) (graph.Direction, error) {
	if token == "" {
		return def, nil
	}

	switch strings.ToUpper(token) {
	case graph.Outgoing.String(), "O":
		return graph.Outgoing, nil
	case graph.Incoming.String(), "I":
		return graph.Incoming, nil
	}

	return def, gdsherror.Newf("unknown direction %s (may be %s)", token, directionAlternatives).
		WithCode(gdsherror.CodeInvalidArgument).
		WithOperation("resolve-direction")
}
