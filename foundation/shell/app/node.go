// File: node.go
// Title: Current-Node Resolver and Node Display
// Description: Reads and writes the per-session current node pointer,
//              defaulting to the store's reference node on first use,
//              and renders nodes for human output.
// Version: v0.1.0
// Created: 2025-02-10

package app

import (
	"fmt"

	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/foundation/shell/session"
)

// CurrentNodeKey is the session key reserved for the current node
// identifier. Apps must not use it for anything else.
const CurrentNodeKey = "CURRENT_NODE"

// CurrentNode returns the session's current node. When the session
// holds an identifier it is resolved through the store; a stale
// identifier surfaces as NotFound. When the session holds none, the
// store's reference node becomes the current node: its identifier is
// pinned into the session as a side effect of this first read.
func CurrentNode(sess *session.Session, store graph.Store) (*graph.Node, error) {
	raw, ok := sess.Get(CurrentNodeKey)
	if !ok {
		node, err := store.ReferenceNode()
		if err != nil {
			return nil, err
		}
		SetCurrentNode(sess, node)
		return node, nil
	}

	id, ok := raw.(int64)
	if !ok {
		// A foreign value under the reserved key counts as unset
		node, err := store.ReferenceNode()
		if err != nil {
			return nil, err
		}
		SetCurrentNode(sess, node)
		return node, nil
	}

	return store.NodeByID(id)
}

// SetCurrentNode overwrites the session's current node pointer. The
// write is trusted: no check that the node still exists.
func SetCurrentNode(sess *session.Session, node *graph.Node) {
	sess.Set(CurrentNodeKey, node.ID)
}

// DisplayName renders a node for human output, e.g. (42). A nil node
// renders as (null).
func DisplayName(node *graph.Node) string {
	if node == nil {
		return "(null)"
	}
	return DisplayNameForID(node.ID)
}

// DisplayNameForID renders a node identifier for human output
func DisplayNameForID(id int64) string {
	return fmt.Sprintf("(%d)", id)
}

// DisplayNameForCurrent renders the current node when it has not been
// resolved to an identifier
func DisplayNameForCurrent() string {
	return "(me)"
}
