package kv

import (
	"context"
	"sync"
)

// Memory is an in-process Storage, used by tests and as a fallback.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string

	// Writes counts successful Set calls.
	Writes int

	// GetErr and SetErr are returned by Get and Set when non-nil.
	GetErr error
	SetErr error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Storage.
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Storage.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.Writes++
	return nil
}
