// File: memory.go
// Title: In-Memory Graph Store
// Description: A mutex-guarded in-memory graph store with
//              snapshot-based transactions. The default backend for
//              local shells and the reference implementation of the
//              store contract in tests.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial in-memory backend

package memory

import (
	"sort"
	"sync"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/graph"
)

// Store is an in-memory graph store. The reference node is created
// eagerly so a fresh store is immediately navigable.
type Store struct {
	mutex   sync.Mutex
	nodes   map[int64]*graph.Node
	rels    map[int64]*graph.Relationship
	nextID  int64
	refID   int64
	closed  bool
	txMutex sync.Mutex
}

// New creates an empty store containing only the reference node
func New() *Store {
	s := &Store{
		nodes: make(map[int64]*graph.Node),
		rels:  make(map[int64]*graph.Relationship),
	}
	ref := s.newNodeLocked()
	s.refID = ref.ID
	return s
}

func (s *Store) newNodeLocked() *graph.Node {
	node := &graph.Node{
		ID:         s.nextID,
		Properties: make(map[string]interface{}),
	}
	s.nodes[node.ID] = node
	s.nextID++
	return node
}

// tx is a snapshot transaction: rollback restores the state captured
// at begin
type tx struct {
	store    *Store
	snapshot snapshot
	success  bool
	finished bool
}

type snapshot struct {
	nodes  map[int64]*graph.Node
	rels   map[int64]*graph.Relationship
	nextID int64
	refID  int64
}

// MarkSuccessful implements graph.Transaction
func (t *tx) MarkSuccessful() {
	t.success = true
}

// Finish implements graph.Transaction. Commit keeps the live state;
// rollback restores the snapshot taken at begin.
func (t *tx) Finish() error {
	if t.finished {
		return gdsherror.New("transaction already finished").
			WithCode(gdsherror.CodeInternal)
	}
	t.finished = true

	if !t.success {
		t.store.mutex.Lock()
		t.store.nodes = t.snapshot.nodes
		t.store.rels = t.snapshot.rels
		t.store.nextID = t.snapshot.nextID
		t.store.refID = t.snapshot.refID
		t.store.mutex.Unlock()
	}

	t.store.txMutex.Unlock()
	return nil
}

// BeginTx implements graph.Store. Transactions are serialized: a
// second begin blocks until the first invocation finishes, matching
// the one-command-at-a-time execution model.
func (s *Store) BeginTx() (graph.Transaction, error) {
	s.txMutex.Lock()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		s.txMutex.Unlock()
		return nil, gdsherror.New("store is closed").WithCode(gdsherror.CodeDatabase)
	}

	return &tx{store: s, snapshot: s.snapshotLocked()}, nil
}

func (s *Store) snapshotLocked() snapshot {
	nodes := make(map[int64]*graph.Node, len(s.nodes))
	for id, node := range s.nodes {
		props := make(map[string]interface{}, len(node.Properties))
		for k, v := range node.Properties {
			props[k] = v
		}
		nodes[id] = &graph.Node{ID: node.ID, Properties: props}
	}

	rels := make(map[int64]*graph.Relationship, len(s.rels))
	for id, rel := range s.rels {
		clone := *rel
		rels[id] = &clone
	}

	return snapshot{nodes: nodes, rels: rels, nextID: s.nextID, refID: s.refID}
}

// NodeByID implements graph.Store
func (s *Store) NodeByID(id int64) (*graph.Node, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	node, ok := s.nodes[id]
	if !ok {
		return nil, gdsherror.Newf("node %d not found", id).
			WithCode(gdsherror.CodeNotFound).
			WithOperation("node-by-id")
	}
	return node, nil
}

// ReferenceNode implements graph.Store
func (s *Store) ReferenceNode() (*graph.Node, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	node, ok := s.nodes[s.refID]
	if !ok {
		return nil, gdsherror.New("reference node missing").
			WithCode(gdsherror.CodeDatabase)
	}
	return node, nil
}

// Relationships implements graph.TraversalStore
func (s *Store) Relationships(nodeID int64, dir graph.Direction) ([]*graph.Relationship, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.nodes[nodeID]; !ok {
		return nil, gdsherror.Newf("node %d not found", nodeID).
			WithCode(gdsherror.CodeNotFound).
			WithOperation("relationships")
	}

	var result []*graph.Relationship
	for _, rel := range s.rels {
		if dir == graph.Outgoing && rel.StartID == nodeID {
			result = append(result, rel)
		}
		if dir == graph.Incoming && rel.EndID == nodeID {
			result = append(result, rel)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// CreateNode implements graph.TraversalStore
func (s *Store) CreateNode() (*graph.Node, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.newNodeLocked(), nil
}

// CreateRelationship implements graph.TraversalStore
func (s *Store) CreateRelationship(startID, endID int64, t graph.RelType) (*graph.Relationship, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, id := range []int64{startID, endID} {
		if _, ok := s.nodes[id]; !ok {
			return nil, gdsherror.Newf("node %d not found", id).
				WithCode(gdsherror.CodeNotFound).
				WithOperation("create-relationship")
		}
	}

	rel := &graph.Relationship{
		ID:      s.nextID,
		Type:    t,
		StartID: startID,
		EndID:   endID,
	}
	s.nextID++
	s.rels[rel.ID] = rel
	return rel, nil
}

// SetProperty implements graph.TraversalStore
func (s *Store) SetProperty(nodeID int64, key string, value interface{}) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	node, ok := s.nodes[nodeID]
	if !ok {
		return gdsherror.Newf("node %d not found", nodeID).
			WithCode(gdsherror.CodeNotFound).
			WithOperation("set-property")
	}
	node.Properties[key] = value
	return nil
}

// RemoveProperty implements graph.TraversalStore
func (s *Store) RemoveProperty(nodeID int64, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	node, ok := s.nodes[nodeID]
	if !ok {
		return gdsherror.Newf("node %d not found", nodeID).
			WithCode(gdsherror.CodeNotFound).
			WithOperation("remove-property")
	}
	delete(node.Properties, key)
	return nil
}

// Close implements graph.Store
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	return nil
}
