// File: sqlite.go
// Title: SQLite Graph Store
// Description: A persistent graph store on SQLite. Nodes, typed
//              properties and relationships live in relational tables,
//              and the shell's transaction contract maps directly onto
//              database/sql transactions: Finish commits when the
//              transaction was marked successful and rolls back
//              otherwise.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial SQLite backend

package sqlite

import (
	"database/sql"
	"errors"
	"strconv"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
	"github.com/msto63/gdsh/foundation/shell/graph"
)

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	id INTEGER PRIMARY KEY AUTOINCREMENT
);
CREATE TABLE IF NOT EXISTS properties (
	node_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
	name    TEXT    NOT NULL,
	value   TEXT    NOT NULL,
	type    TEXT    NOT NULL,
	PRIMARY KEY (node_id, name)
);
CREATE TABLE IF NOT EXISTS relationships (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	type     TEXT    NOT NULL,
	start_id INTEGER NOT NULL REFERENCES nodes(id),
	end_id   INTEGER NOT NULL REFERENCES nodes(id)
);
CREATE INDEX IF NOT EXISTS idx_relationships_start ON relationships(start_id);
CREATE INDEX IF NOT EXISTS idx_relationships_end   ON relationships(end_id);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const refNodeKey = "reference_node"

// Store is a SQLite-backed graph store
type Store struct {
	db *sql.DB

	// txMutex serializes transactions; activeTx is the database/sql
	// transaction all operations route through while one is open
	txMutex  sync.Mutex
	mutex    sync.Mutex
	activeTx *sql.Tx
	closed   bool
}

// querier is the common query surface of *sql.DB and *sql.Tx
type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Open opens (and if necessary bootstraps) a SQLite store at path.
// Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, gdsherror.Wrap(err, "opening sqlite store").
			WithCode(gdsherror.CodeDatabase).
			WithDetail("path", path)
	}

	// database/sql pools connections; an in-memory sqlite database
	// exists per connection, so the pool must stay at one
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, gdsherror.Wrap(err, "bootstrapping sqlite schema").
			WithCode(gdsherror.CodeDatabase)
	}

	s := &Store{db: db}
	if err := s.ensureReferenceNode(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureReferenceNode() error {
	var value string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, refNodeKey).Scan(&value)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return gdsherror.Wrap(err, "reading reference node").
			WithCode(gdsherror.CodeDatabase)
	}

	res, err := s.db.Exec(`INSERT INTO nodes DEFAULT VALUES`)
	if err != nil {
		return gdsherror.Wrap(err, "creating reference node").
			WithCode(gdsherror.CodeDatabase)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return gdsherror.Wrap(err, "creating reference node").
			WithCode(gdsherror.CodeDatabase)
	}
	if _, err := s.db.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`,
		refNodeKey, strconv.FormatInt(id, 10)); err != nil {
		return gdsherror.Wrap(err, "pinning reference node").
			WithCode(gdsherror.CodeDatabase)
	}
	return nil
}

// q returns the active transaction if one is open, the bare database
// otherwise
func (s *Store) q() querier {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.activeTx != nil {
		return s.activeTx
	}
	return s.db
}

// tx maps the shell transaction contract onto a *sql.Tx
type tx struct {
	store    *Store
	sqlTx    *sql.Tx
	success  bool
	finished bool
}

// MarkSuccessful implements graph.Transaction
func (t *tx) MarkSuccessful() {
	t.success = true
}

// Finish implements graph.Transaction
func (t *tx) Finish() error {
	if t.finished {
		return gdsherror.New("transaction already finished").
			WithCode(gdsherror.CodeInternal)
	}
	t.finished = true

	t.store.mutex.Lock()
	t.store.activeTx = nil
	t.store.mutex.Unlock()

	var err error
	if t.success {
		err = t.sqlTx.Commit()
	} else {
		err = t.sqlTx.Rollback()
	}
	t.store.txMutex.Unlock()

	if err != nil {
		return gdsherror.Wrap(err, "finishing transaction").
			WithCode(gdsherror.CodeDatabase)
	}
	return nil
}

// BeginTx implements graph.Store. Transactions are serialized the same
// way the in-memory backend serializes them.
func (s *Store) BeginTx() (graph.Transaction, error) {
	s.txMutex.Lock()

	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		s.txMutex.Unlock()
		return nil, gdsherror.New("store is closed").WithCode(gdsherror.CodeDatabase)
	}
	s.mutex.Unlock()

	sqlTx, err := s.db.Begin()
	if err != nil {
		s.txMutex.Unlock()
		return nil, gdsherror.Wrap(err, "beginning transaction").
			WithCode(gdsherror.CodeDatabase)
	}

	s.mutex.Lock()
	s.activeTx = sqlTx
	s.mutex.Unlock()

	return &tx{store: s, sqlTx: sqlTx}, nil
}

// NodeByID implements graph.Store
func (s *Store) NodeByID(id int64) (*graph.Node, error) {
	return s.loadNode(s.q(), id)
}

func (s *Store) loadNode(q querier, id int64) (*graph.Node, error) {
	var found int64
	err := q.QueryRow(`SELECT id FROM nodes WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gdsherror.Newf("node %d not found", id).
			WithCode(gdsherror.CodeNotFound)
	}
	if err != nil {
		return nil, gdsherror.Wrap(err, "loading node").
			WithCode(gdsherror.CodeDatabase)
	}

	node := &graph.Node{ID: id, Properties: make(map[string]interface{})}

	rows, err := q.Query(`SELECT name, value, type FROM properties WHERE node_id = ?`, id)
	if err != nil {
		return nil, gdsherror.Wrap(err, "loading properties").
			WithCode(gdsherror.CodeDatabase)
	}
	defer rows.Close()

	for rows.Next() {
		var name, raw, kind string
		if err := rows.Scan(&name, &raw, &kind); err != nil {
			return nil, gdsherror.Wrap(err, "scanning property").
				WithCode(gdsherror.CodeDatabase)
		}
		value, err := decodeValue(raw, kind)
		if err != nil {
			return nil, err
		}
		node.Properties[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, gdsherror.Wrap(err, "loading properties").
			WithCode(gdsherror.CodeDatabase)
	}
	return node, nil
}

// ReferenceNode implements graph.Store
func (s *Store) ReferenceNode() (*graph.Node, error) {
	q := s.q()

	var value string
	err := q.QueryRow(`SELECT value FROM meta WHERE key = ?`, refNodeKey).Scan(&value)
	if err != nil {
		return nil, gdsherror.Wrap(err, "reading reference node").
			WithCode(gdsherror.CodeDatabase)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, gdsherror.Wrap(err, "reading reference node").
			WithCode(gdsherror.CodeDatabase)
	}
	return s.loadNode(q, id)
}

// Relationships implements graph.TraversalStore
func (s *Store) Relationships(nodeID int64, dir graph.Direction) ([]*graph.Relationship, error) {
	q := s.q()
	if _, err := s.loadNode(q, nodeID); err != nil {
		return nil, err
	}

	column := "start_id"
	if dir == graph.Incoming {
		column = "end_id"
	}
	rows, err := q.Query(
		`SELECT id, type, start_id, end_id FROM relationships WHERE `+column+` = ? ORDER BY id`,
		nodeID)
	if err != nil {
		return nil, gdsherror.Wrap(err, "loading relationships").
			WithCode(gdsherror.CodeDatabase)
	}
	defer rows.Close()

	var rels []*graph.Relationship
	for rows.Next() {
		var rel graph.Relationship
		var typeName string
		if err := rows.Scan(&rel.ID, &typeName, &rel.StartID, &rel.EndID); err != nil {
			return nil, gdsherror.Wrap(err, "scanning relationship").
				WithCode(gdsherror.CodeDatabase)
		}
		rel.Type = graph.Type(typeName)
		rels = append(rels, &rel)
	}
	if err := rows.Err(); err != nil {
		return nil, gdsherror.Wrap(err, "loading relationships").
			WithCode(gdsherror.CodeDatabase)
	}
	return rels, nil
}

// CreateNode implements graph.TraversalStore
func (s *Store) CreateNode() (*graph.Node, error) {
	res, err := s.q().Exec(`INSERT INTO nodes DEFAULT VALUES`)
	if err != nil {
		return nil, gdsherror.Wrap(err, "creating node").
			WithCode(gdsherror.CodeDatabase)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, gdsherror.Wrap(err, "creating node").
			WithCode(gdsherror.CodeDatabase)
	}
	return &graph.Node{ID: id, Properties: make(map[string]interface{})}, nil
}

// CreateRelationship implements graph.TraversalStore
func (s *Store) CreateRelationship(startID, endID int64, t graph.RelType) (*graph.Relationship, error) {
	q := s.q()
	for _, id := range []int64{startID, endID} {
		if _, err := s.loadNode(q, id); err != nil {
			return nil, err
		}
	}

	res, err := q.Exec(`INSERT INTO relationships (type, start_id, end_id) VALUES (?, ?, ?)`,
		t.Name(), startID, endID)
	if err != nil {
		return nil, gdsherror.Wrap(err, "creating relationship").
			WithCode(gdsherror.CodeDatabase)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, gdsherror.Wrap(err, "creating relationship").
			WithCode(gdsherror.CodeDatabase)
	}
	return &graph.Relationship{ID: id, Type: t, StartID: startID, EndID: endID}, nil
}

// SetProperty implements graph.TraversalStore
func (s *Store) SetProperty(nodeID int64, key string, value interface{}) error {
	q := s.q()
	if _, err := s.loadNode(q, nodeID); err != nil {
		return err
	}

	raw, kind, err := encodeValue(value)
	if err != nil {
		return err
	}
	_, err = q.Exec(
		`INSERT INTO properties (node_id, name, value, type) VALUES (?, ?, ?, ?)
		 ON CONFLICT (node_id, name) DO UPDATE SET value = excluded.value, type = excluded.type`,
		nodeID, key, raw, kind)
	if err != nil {
		return gdsherror.Wrap(err, "writing property").
			WithCode(gdsherror.CodeDatabase)
	}
	return nil
}

// RemoveProperty implements graph.TraversalStore
func (s *Store) RemoveProperty(nodeID int64, key string) error {
	q := s.q()
	if _, err := s.loadNode(q, nodeID); err != nil {
		return err
	}

	res, err := q.Exec(`DELETE FROM properties WHERE node_id = ? AND name = ?`, nodeID, key)
	if err != nil {
		return gdsherror.Wrap(err, "removing property").
			WithCode(gdsherror.CodeDatabase)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return gdsherror.Wrap(err, "removing property").
			WithCode(gdsherror.CodeDatabase)
	}
	if affected == 0 {
		return gdsherror.Newf("node %d has no property %q", nodeID, key).
			WithCode(gdsherror.CodeNotFound)
	}
	return nil
}

// Close implements graph.Store
func (s *Store) Close() error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return nil
	}
	s.closed = true
	s.mutex.Unlock()

	if err := s.db.Close(); err != nil {
		return gdsherror.Wrap(err, "closing sqlite store").
			WithCode(gdsherror.CodeDatabase)
	}
	return nil
}

// encodeValue flattens a property value into its text form plus a type
// discriminator for the type column
func encodeValue(value interface{}) (raw, kind string, err error) {
	switch v := value.(type) {
	case string:
		return v, "string", nil
	case int64:
		return strconv.FormatInt(v, 10), "int", nil
	case int:
		return strconv.FormatInt(int64(v), 10), "int", nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), "float", nil
	case bool:
		return strconv.FormatBool(v), "bool", nil
	default:
		return "", "", gdsherror.Newf("unsupported property type %T", value).
			WithCode(gdsherror.CodeInvalidArgument)
	}
}

func decodeValue(raw, kind string) (interface{}, error) {
	switch kind {
	case "string":
		return raw, nil
	case "int":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, gdsherror.Wrap(err, "decoding int property").
				WithCode(gdsherror.CodeDatabase)
		}
		return v, nil
	case "float":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, gdsherror.Wrap(err, "decoding float property").
				WithCode(gdsherror.CodeDatabase)
		}
		return v, nil
	case "bool":
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, gdsherror.Wrap(err, "decoding bool property").
				WithCode(gdsherror.CodeDatabase)
		}
		return v, nil
	default:
		return nil, gdsherror.Newf("unknown property type %q", kind).
			WithCode(gdsherror.CodeDatabase)
	}
}
