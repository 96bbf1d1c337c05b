package dataconnector

import (
	"sync"

	"golang.org/x/exp/slices"
)

// Storage is the key value cache a connector keeps its data in
type Storage interface {
	Load(key string) (any, bool)
	Store(key string, value any)
	Delete(key string)
	Keys() []string
	Len() int
	Clear()
}

// MemoryStorage is an unbounded in-process Storage safe for concurrent use
type MemoryStorage struct {
	mutex sync.RWMutex
	data  map[string]any
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: map[string]any{},
	}
}

func (m *MemoryStorage) Load(key string) (any, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, ok := m.data[key]
	return value, ok
}

func (m *MemoryStorage) Store(key string, value any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data[key] = value
}

func (m *MemoryStorage) Delete(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.data, key)
}

// Keys returns the stored keys in sorted order
func (m *MemoryStorage) Keys() []string {
	m.mutex.RLock()
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	m.mutex.RUnlock()

	slices.Sort(keys)

	return keys
}

func (m *MemoryStorage) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.data)
}

func (m *MemoryStorage) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.data = map[string]any{}
}
