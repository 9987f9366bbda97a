package store

import (
	"context"
	"sync"
)

// Memory is a process-local Backend. Data does not survive a restart.
type Memory struct {
	mu   sync.RWMutex
	data map[Key][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[Key][]byte)}
}

// Get implements Backend.
func (m *Memory) Get(_ context.Context, key Key) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

// Put implements Backend.
func (m *Memory) Put(_ context.Context, key Key, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), payload...)
	return nil
}
