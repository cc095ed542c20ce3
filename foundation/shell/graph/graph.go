// File: graph.go
// Title: Graph Store Boundary
// Description: Defines the opaque graph store collaborator the shell
//              executes against: nodes, relationships, typed edges,
//              traversal directions and the transaction contract that
//              the command executor demarcates.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial store boundary

package graph

import "fmt"

// Direction qualifies a relationship traversal relative to a node
type Direction int

const (
	// Outgoing traverses relationships that start at the node
	Outgoing Direction = iota

	// Incoming traverses relationships that end at the node
	Incoming
)

// String returns the canonical upper-case name of the direction
func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "OUTGOING"
	case Incoming:
		return "INCOMING"
	default:
		return "UNKNOWN"
	}
}

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	if d == Outgoing {
		return Incoming
	}
	return Outgoing
}

// Node is a graph entity addressed by its identifier. The shell never
// owns node data, it only holds identifiers and resolves them through
// a Store.
type Node struct {
	ID         int64
	Properties map[string]interface{}
}

// RelType is an immutable relationship type token with identity by name
type RelType struct {
	name string
}

// Type constructs a relationship type token from a raw name
func Type(name string) RelType {
	return RelType{name: name}
}

// Name returns the type name
func (t RelType) Name() string {
	return t.name
}

// String returns the type name
func (t RelType) String() string {
	return t.name
}

// Relationship is a typed edge between two nodes
type Relationship struct {
	ID      int64
	Type    RelType
	StartID int64
	EndID   int64
}

// Other returns the node on the far side of the relationship as seen
// from nodeID
func (r *Relationship) Other(nodeID int64) int64 {
	if r.StartID == nodeID {
		return r.EndID
	}
	return r.StartID
}

// Transaction demarcates one unit of work against the store. It is
// owned exclusively by the command executor for the duration of one
// invocation: Finish must be called exactly once per Begin, on every
// exit path, and commits only if MarkSuccessful was called before.
type Transaction interface {
	// MarkSuccessful flags the transaction for commit on Finish
	MarkSuccessful()

	// Finish finalizes the transaction: commit if marked successful,
	// rollback otherwise. Exactly one call per transaction.
	Finish() error
}

// Store is the minimal graph store surface the shell core consumes
type Store interface {
	// BeginTx opens a new transaction
	BeginTx() (Transaction, error)

	// NodeByID resolves a node identifier to a live node. A missing
	// node fails with a NotFound error; it is never healed silently.
	NodeByID(id int64) (*Node, error)

	// ReferenceNode returns the store's default starting node
	ReferenceNode() (*Node, error)

	// Close releases the store
	Close() error
}

// TraversalStore extends Store with the operations the built-in apps
// navigate and mutate with
type TraversalStore interface {
	Store

	// Relationships lists the relationships of a node in the given
	// direction
	Relationships(nodeID int64, dir Direction) ([]*Relationship, error)

	// CreateNode creates a new empty node
	CreateNode() (*Node, error)

	// CreateRelationship creates a typed edge between two nodes
	CreateRelationship(startID, endID int64, t RelType) (*Relationship, error)

	// SetProperty sets a property on a node
	SetProperty(nodeID int64, key string, value interface{}) error

	// RemoveProperty removes a property from a node
	RemoveProperty(nodeID int64, key string) error
}

// TransportError reports a failure of the communication channel to a
// remote store, as opposed to a failure of the operation itself. The
// command executor re-wraps these into the shell's own error kind.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport failure during %s", e.Op)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}
