// File: session.go
// Title: Shell Session State
// Description: Implements the per-connection session state store and
//              the manager that owns session lifecycles. A session is
//              a plain key-value mapping that outlives individual
//              command invocations; absence of a key is a valid,
//              non-exceptional outcome.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial session store and manager

package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
)

// Session holds the navigational state of one shell connection. It is
// created at connection start and destroyed at connection end. The
// surrounding runtime serializes command invocations per session, so
// value access needs no internal locking.
type Session struct {
	id        string
	createdAt time.Time
	lastUsed  time.Time
	values    map[string]interface{}
}

// newSession creates a session with a fresh identifier
func newSession() *Session {
	now := time.Now()
	return &Session{
		id:        uuid.NewString(),
		createdAt: now,
		lastUsed:  now,
		values:    make(map[string]interface{}),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns when the session was created
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// LastUsed returns when the session last executed a command
func (s *Session) LastUsed() time.Time {
	return s.lastUsed
}

// Touch updates the last-used timestamp
func (s *Session) Touch() {
	s.lastUsed = time.Now()
}

// Get returns the value stored under key. The second return value is
// false when the key is absent.
func (s *Session) Get(key string) (interface{}, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Set stores a value under key, overwriting any previous value
func (s *Session) Set(key string, value interface{}) {
	s.values[key] = value
}

// Remove deletes the value stored under key
func (s *Session) Remove(key string) {
	delete(s.values, key)
}

// Keys returns all keys currently set, sorted
func (s *Session) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Manager owns all live sessions of a shell server. Unlike the
// sessions themselves, the manager is accessed concurrently and is
// internally synchronized.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Create creates and registers a new session
func (m *Manager) Create() *Session {
	sess := newSession()

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[sess.id] = sess

	return sess
}

// Get looks up a session by ID
func (m *Manager) Get(id string) (*Session, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, gdsherror.Newf("session %s not found", id).
			WithCode(gdsherror.CodeNotFound).
			WithOperation("session-get")
	}
	return sess, nil
}

// Close destroys a session; closing an unknown session is a no-op
func (m *Manager) Close(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
