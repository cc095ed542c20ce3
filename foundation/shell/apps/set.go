// File: set.go
// Title: Set and Rm Apps
// Description: Mutates properties on the current node. set writes a
//              property, converting the value to a requested type
//              first, rm removes one.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial set and rm apps

package apps

import (
	"context"
	"strconv"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/app"
	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/foundation/shell/parser"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// valueType enumerates the property value types set can write. The
// declaration order decides which type an abbreviated token picks.
type valueType int

const (
	typeString valueType = iota
	typeInt
	typeFloat
	typeBoolean
)

var valueTypes = []app.Member[valueType]{
	{Name: "STRING", Value: typeString},
	{Name: "INT", Value: typeInt},
	{Name: "FLOAT", Value: typeFloat},
	{Name: "BOOLEAN", Value: typeBoolean},
}

// convertValue parses raw into the requested type
func convertValue(raw string, vt valueType) (interface{}, error) {
	switch vt {
	case typeInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, gdsherror.Newf("%q is not an integer", raw).
				WithCode(gdsherror.CodeInvalidArgument)
		}
		return v, nil
	case typeFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, gdsherror.Newf("%q is not a float", raw).
				WithCode(gdsherror.CodeInvalidArgument)
		}
		return v, nil
	case typeBoolean:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, gdsherror.Newf("%q is not a boolean", raw).
				WithCode(gdsherror.CodeInvalidArgument)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// Set writes a property on the current node
type Set struct {
	store graph.TraversalStore
}

// Name implements app.App
func (s *Set) Name() string { return "set" }

// Description implements app.App
func (s *Set) Description() string { return "sets a property on the current node" }

// Options implements app.App
func (s *Set) Options() map[string]parser.OptionSpec {
	return map[string]parser.OptionSpec{
		"t": {HasValue: true, Description: "value type (STRING, INT, FLOAT, BOOLEAN), abbreviations allowed"},
	}
}

// Exec implements app.App
func (s *Set) Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out app.Output) (string, error) {
	key := inv.Arg(0)
	raw := inv.Arg(1)
	if key == "" || len(inv.Args()) < 2 {
		return "", gdsherror.New("usage: set [-t <type>] <key> <value>").
			WithCode(gdsherror.CodeInvalidArgument)
	}

	vt, err := app.ResolveEnum(valueTypes, inv.OptionOr("t", ""), typeString)
	if err != nil {
		return "", err
	}
	value, err := convertValue(raw, vt)
	if err != nil {
		return "", err
	}

	node, err := app.CurrentNode(sess, s.store)
	if err != nil {
		return "", err
	}
	if err := s.store.SetProperty(node.ID, key, value); err != nil {
		return "", err
	}
	return "", nil
}

// Rm removes a property from the current node
type Rm struct {
	store graph.TraversalStore
}

// Name implements app.App
func (r *Rm) Name() string { return "rm" }

// Description implements app.App
func (r *Rm) Description() string { return "removes a property from the current node" }

// Options implements app.App
func (r *Rm) Options() map[string]parser.OptionSpec { return nil }

// Exec implements app.App
func (r *Rm) Exec(ctx context.Context, inv *parser.Invocation, sess *session.Session, out app.Output) (string, error) {
	key := inv.Arg(0)
	if key == "" {
		return "", gdsherror.New("usage: rm <key>").
			WithCode(gdsherror.CodeInvalidArgument)
	}

	node, err := app.CurrentNode(sess, r.store)
	if err != nil {
		return "", err
	}
	if err := r.store.RemoveProperty(node.ID, key); err != nil {
		return "", err
	}
	return "", nil
}
