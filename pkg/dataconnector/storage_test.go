package dataconnector

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()

	_, ok := storage.Load("status")
	assert.False(t, ok)

	storage.Store("trip", 1)
	storage.Store("status", 2)
	storage.Store("bap", 3)

	assert.Equal(t, 3, storage.Len())
	assert.Equal(t, []string{"bap", "status", "trip"}, storage.Keys())

	storage.Delete("status")
	_, ok = storage.Load("status")
	assert.False(t, ok)
	assert.Equal(t, 2, storage.Len())

	storage.Clear()
	assert.Equal(t, 0, storage.Len())
	assert.Empty(t, storage.Keys())
}

func TestMemoryStorageConcurrentAccess(t *testing.T) {
	storage := NewMemoryStorage()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			key := fmt.Sprintf("connections_%d", i)
			for j := 0; j < 100; j++ {
				storage.Store(key, j)
				storage.Load(key)
				storage.Keys()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, storage.Len())
	for i := 0; i < 10; i++ {
		value, ok := storage.Load(fmt.Sprintf("connections_%d", i))
		assert.True(t, ok)
		assert.Equal(t, 99, value)
	}
}
