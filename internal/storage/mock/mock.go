package mock

import (
	"context"
	"sync"

	"github.com/teenfaith/teenfaith/internal/storage"
)

var _ storage.KV = (*MockKV)(nil)

// MockKV is an in-memory storage.KV for testing.
type MockKV struct {
	mu   sync.RWMutex
	data map[string][]byte

	// Error simulation
	GetError    error
	SetError    error
	DeleteError error

	// Call counting
	SetCalls int
}

// NewMockKV creates a new MockKV instance.
func NewMockKV() *MockKV {
	return &MockKV{
		data: make(map[string][]byte),
	}
}

// Reset clears all data and errors from the mock.
func (m *MockKV) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string][]byte)
	m.GetError = nil
	m.SetError = nil
	m.DeleteError = nil
	m.SetCalls = 0
}

// Put stores a raw value, bypassing error simulation.
func (m *MockKV) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Raw returns the raw value for key, bypassing error simulation.
func (m *MockKV) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MockKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MockKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MockKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.data, key)
	return nil
}

func (m *MockKV) Close() error {
	return nil
}
