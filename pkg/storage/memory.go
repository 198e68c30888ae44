package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Backend. It is used in tests and by tools that
// work on a copy of the data.
type Memory struct {
	mu        sync.Mutex
	values    map[string][]byte
	writeErr  error
	putCounts map[string]int
}

func NewMemory() *Memory {
	return &Memory{
		values:    map[string][]byte{},
		putCounts: map[string]int{},
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	m.values[key] = append([]byte(nil), value...)
	m.putCounts[key]++
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	delete(m.values, key)
	return nil
}

// FailWrites makes every following Put and Delete return err.
// Passing nil restores normal operation.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Puts returns how many successful writes key has received.
func (m *Memory) Puts(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.putCounts[key]
}
