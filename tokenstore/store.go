package tokenstore

import (
	"sync"

	"github.com/taskmind/go-task-client/internal/errors"
)

// StorageKey is the name under which the bearer token is persisted.
const StorageKey = "jwt_token"

// Storage is the durable medium behind a Store. Implementations return an
// empty string, not an error, when no token has been persisted.
type Storage interface {
	Read() (string, error)
	Write(token string) error
	Remove() error
}

// Store holds the single bearer token for the client: cached in memory and
// mirrored to a Storage backend. The token is the one piece of state shared
// across collaborators, so all access goes through the lock.
type Store struct {
	storage Storage
	cached  string
	lock    sync.RWMutex
}

// New creates a Store on top of storage. A nil storage means the execution
// context has no durable medium; the Store then works in memory only.
func New(storage Storage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Store{storage: storage}
}

// Set persists the token and caches it in memory. Any previously held token
// is replaced.
func (s *Store) Set(token string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.storage.Write(token); err != nil {
		return errors.Wrapf(err, "tokenstore.Set")
	}
	s.cached = token
	return nil
}

// Get returns the cached token, falling back to the storage backend when the
// cache is empty. An empty string means no token is held.
func (s *Store) Get() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.cached != "" {
		return s.cached
	}
	token, err := s.storage.Read()
	if err != nil {
		return ""
	}
	s.cached = token
	return token
}

// Clear removes the token from memory and from the storage backend.
func (s *Store) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.cached = ""
	if err := s.storage.Remove(); err != nil {
		return errors.Wrapf(err, "tokenstore.Clear")
	}
	return nil
}
