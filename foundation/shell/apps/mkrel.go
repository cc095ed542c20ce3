// File: mkrel.go
// Title: Mkrel App
// Description: Creates a relationship from the current node, either to
//              an existing node or to a freshly created one.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial mkrel app

package apps

import (
	"context"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/app"
	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/foundation/shell/parser"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// Mkrel creates a relationship anchored at the current node
type Mkrel struct {
	store graph.TraversalStore
}

// Name implements app.App
func (m *Mkrel) Name() string { return "mkrel" }

// Description implements app.App
func (m *Mkrel) Description() string {
	return "creates a relationship from the current node"
}

// Options implements app.App
func (m *Mkrel) Options() map[string]parser.OptionSpec {
	return map[string]parser.OptionSpec{
		"t": {HasValue: true, Description: "relationship type name"},
		"d": {HasValue: true, Description: "direction seen from the current node, default OUTGOING"},
		"n": {Description: "create a new node as the other end"},
	}
}

// Exec implements app.App
func (m *Mkrel) Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out app.Output) (string, error) {
	typeName, ok := inv.Option("t")
	if !ok || typeName == "" {
		return "", gdsherror.New("mkrel needs a relationship type, use -t <type>").
			WithCode(gdsherror.CodeInvalidArgument)
	}

	dir, err := app.ResolveDirection(inv.OptionOr("d", ""), graph.Outgoing)
	if err != nil {
		return "", err
	}

	node, err := app.CurrentNode(sess, m.store)
	if err != nil {
		return "", err
	}

	var otherID int64
	if inv.HasOption("n") {
		created, err := m.store.CreateNode()
		if err != nil {
			return "", err
		}
		otherID = created.ID
	} else {
		if inv.Arg(0) == "" {
			return "", gdsherror.New("mkrel needs a target node id or -n").
				WithCode(gdsherror.CodeInvalidArgument)
		}
		otherID, err = parseNodeID(inv.Arg(0))
		if err != nil {
			return "", err
		}
		if _, err := m.store.NodeByID(otherID); err != nil {
			return "", err
		}
	}

	startID, endID := node.ID, otherID
	if dir == graph.Incoming {
		startID, endID = otherID, node.ID
	}

	rel, err := m.store.CreateRelationship(startID, endID, graph.Type(typeName))
	if err != nil {
		return "", err
	}
	return relationshipLine(rel, node.ID, dir), nil
}
