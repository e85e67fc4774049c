package storage

import "sync"

// Memory is an in-process key-value backend.
// Used when the database cannot be opened, and in tests.
type Memory struct {
	mu     sync.Mutex
	values map[uint32][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[uint32][]byte)}
}

// Read returns a copy of the value stored under key, or ErrNotFound.
func (m *Memory) Read(key uint32) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Write stores a copy of value under key.
func (m *Memory) Write(key uint32, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}
