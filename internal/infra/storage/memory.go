package storage

import (
	"context"
	"sync"
)

// MemoryStore is a process-local store. Values are copied on the way in and out.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, tenant, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[tenant][key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, tenant, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.data[tenant]
	if !ok {
		bucket = make(map[string][]byte)
		m.data[tenant] = bucket
	}
	bucket[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

// Len reports how many keys a tenant holds
func (m *MemoryStore) Len(tenant string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[tenant])
}
