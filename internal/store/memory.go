package store

import (
	"context"
	"sync"
)

// Memory is the in-memory Store used by tests and local development.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Envelope
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]Envelope)}
}

func (m *Memory) Read(_ context.Context, namespace, key string) (*Envelope, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ns, ok := m.data[namespace]
	if !ok {
		return nil, ErrNotFound
	}
	env, ok := ns[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &env, nil
}

func (m *Memory) Write(_ context.Context, namespace, key string, env *Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string]Envelope)
		m.data[namespace] = ns
	}
	ns[key] = *env
	return nil
}

func (m *Memory) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ns, ok := m.data[namespace]; ok {
		delete(ns, key)
	}
	return nil
}
