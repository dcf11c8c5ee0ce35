package storage

import (
	"context"
	"sync"
)

// MemKV is an in-memory KV used by tests and the memory backend. Values
// are copied on the way in and out so callers cannot alias the store.
type MemKV struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{blobs: make(map[string][]byte)}
}

func (m *MemKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.blobs[key] = v
	return nil
}

func (m *MemKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
