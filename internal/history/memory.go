package history

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV backend used in tests and when the service
// runs without Redis. Thread-safe.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory KV store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get retrieves the value for key, or ErrKeyNotFound.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

// Del removes key.
func (m *MemoryKV) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
