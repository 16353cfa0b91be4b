package tokenstore

import "sync"

var _ Storage = (*MemoryStorage)(nil)

// MemoryStorage keeps the token in process memory only. It backs the Store
// in execution contexts without a durable medium, and tests.
type MemoryStorage struct {
	token string
	lock  sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Read() (string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.token, nil
}

func (m *MemoryStorage) Write(token string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStorage) Remove() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.token = ""
	return nil
}
