package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by a Store when no session is persisted.
var ErrNotFound = errors.New("no stored session")

// ErrCorrupt is returned when the persisted blob cannot be opened or
// decoded. Callers should treat it as ErrNotFound plus an audit signal.
var ErrCorrupt = errors.New("stored session corrupt")

// Store persists at most one session per storage slot. Implementations
// must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, sess *Session) error
	Load(ctx context.Context) (*Session, error)
	Delete(ctx context.Context) error
}

// MemoryStore keeps the session in process memory. Useful for tests and
// short-lived tools; everything is lost when the process exits.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *Session
}

// NewMemoryStore describes the newmemorystore operation and its observable behavior.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	if sess == nil {
		return errors.New("nil session")
	}

	cp := *sess
	s.mu.Lock()
	s.sess = &cp
	s.mu.Unlock()
	return nil
}

// Load describes the load operation and its observable behavior.
//
// Load may return an error when input validation, dependency calls, or security checks fail.
func (s *MemoryStore) Load(_ context.Context) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sess == nil {
		return nil, ErrNotFound
	}
	cp := *s.sess
	return &cp, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete is idempotent: deleting an empty store is not an error.
func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	s.sess = nil
	s.mu.Unlock()
	return nil
}
