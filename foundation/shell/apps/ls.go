// File: ls.go
// Title: Ls App
// Description: Lists the properties and relationships of the current
//              node, optionally filtered by direction and by a name
//              pattern.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial ls app

package apps

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/msto63/gdsh/foundation/shell/app"
	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/foundation/shell/parser"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// Ls lists properties and relationships of the current node
type Ls struct {
	store graph.TraversalStore
}

// Name implements app.App
func (l *Ls) Name() string { return "ls" }

// Description implements app.App
func (l *Ls) Description() string {
	return "lists properties and relationships of the current node"
}

// Options implements app.App
func (l *Ls) Options() map[string]parser.OptionSpec {
	return map[string]parser.OptionSpec{
		"d": {HasValue: true, Description: "direction filter (OUTGOING, INCOMING, o, i)"},
		"f": {HasValue: true, Description: "filter pattern for property keys and relationship types"},
		"s": {Description: "match the filter case sensitively"},
		"e": {Description: "require the filter to match exactly"},
		"p": {Description: "list properties only"},
		"r": {Description: "list relationships only"},
	}
}

// Exec implements app.App
func (l *Ls) Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out app.Output) (string, error) {
	node, err := app.CurrentNode(sess, l.store)
	if err != nil {
		return "", err
	}

	caseSensitive := inv.HasOption("s")
	exact := inv.HasOption("e")
	pattern, err := app.NewPattern(inv.OptionOr("f", ""), caseSensitive)
	if err != nil {
		return "", err
	}

	onlyProps := inv.HasOption("p")
	onlyRels := inv.HasOption("r")

	var lines []string

	if !onlyRels {
		keys := make([]string, 0, len(node.Properties))
		for key := range node.Properties {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if !app.Matches(pattern, key, caseSensitive, exact) {
				continue
			}
			lines = append(lines, fmt.Sprintf("*%s=[%v]", key, node.Properties[key]))
		}
	}

	if !onlyProps {
		directions := []graph.Direction{graph.Outgoing, graph.Incoming}
		if token, ok := inv.Option("d"); ok {
			dir, err := app.ResolveDirectionDefault(token)
			if err != nil {
				return "", err
			}
			directions = []graph.Direction{dir}
		}
		for _, dir := range directions {
			rels, err := l.store.Relationships(node.ID, dir)
			if err != nil {
				return "", err
			}
			for _, rel := range rels {
				if !app.Matches(pattern, rel.Type.Name(), caseSensitive, exact) {
					continue
				}
				lines = append(lines, relationshipLine(rel, node.ID, dir))
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}
