// File: apps.go
// Title: Built-in Navigation Apps
// Description: The built-in shell apps for standing in and moving
//              around the graph: pwd shows the current node, cd moves
//              it. Both run inside the transaction supplied by the
//              executor.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial pwd and cd apps

package apps

import (
	"context"
	"fmt"
	"strconv"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/app"
	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/foundation/shell/parser"
	"github.com/msto63/gdsh/foundation/shell/registry"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// InstallBuiltins registers the built-in app set against a store
func InstallBuiltins(reg *registry.Registry, store graph.TraversalStore) error {
	builtins := []app.App{
		&Pwd{store: store},
		&Cd{store: store},
		&Ls{store: store},
		&Set{store: store},
		&Rm{store: store},
		&Mkrel{store: store},
		&Man{registry: reg},
	}
	for _, a := range builtins {
		if err := reg.Register(a); err != nil {
			return err
		}
	}
	return nil
}

// parseNodeID parses a node identifier argument
func parseNodeID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, gdsherror.Newf("invalid node id %q", arg).
			WithCode(gdsherror.CodeInvalidArgument)
	}
	return id, nil
}

// Pwd displays the current node
type Pwd struct {
	store graph.TraversalStore
}

// Name implements app.App
func (p *Pwd) Name() string { return "pwd" }

// Description implements app.App
func (p *Pwd) Description() string { return "displays the current node" }

// Options implements app.App
func (p *Pwd) Options() map[string]parser.OptionSpec { return nil }

// Exec implements app.App
func (p *Pwd) Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out app.Output) (string, error) {
	node, err := app.CurrentNode(sess, p.store)
	if err != nil {
		return "", err
	}
	return "Current is " + app.DisplayName(node), nil
}

// Cd changes the current node. Without an argument it returns to the
// reference node.
type Cd struct {
	store graph.TraversalStore
}

// Name implements app.App
func (c *Cd) Name() string { return "cd" }

// Description implements app.App
func (c *Cd) Description() string {
	return "changes the current node, by id or back to the reference node"
}

// Options implements app.App
func (c *Cd) Options() map[string]parser.OptionSpec { return nil }

// Exec implements app.App
func (c *Cd) Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out app.Output) (string, error) {
	if inv.Arg(0) == "" {
		ref, err := c.store.ReferenceNode()
		if err != nil {
			return "", err
		}
		app.SetCurrentNode(sess, ref)
		return "", nil
	}

	id, err := parseNodeID(inv.Arg(0))
	if err != nil {
		return "", err
	}

	// The target must exist; the pointer write itself is trusted
	node, err := c.store.NodeByID(id)
	if err != nil {
		return "", err
	}
	app.SetCurrentNode(sess, node)

	return "", nil
}

// relationshipLine renders one relationship relative to the current
// node, e.g. (me) --[KNOWS]--> (42)
func relationshipLine(rel *graph.Relationship, nodeID int64, dir graph.Direction) string {
	other := app.DisplayNameForID(rel.Other(nodeID))
	if dir == graph.Outgoing {
		return fmt.Sprintf("%s --[%s]--> %s", app.DisplayNameForCurrent(), rel.Type, other)
	}
	return fmt.Sprintf("%s <--[%s]-- %s", app.DisplayNameForCurrent(), rel.Type, other)
}
