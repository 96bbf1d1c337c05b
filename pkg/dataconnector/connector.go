package dataconnector

import (
	"fmt"
)

// Storer is anything values can be stored into under a key
type Storer interface {
	Store(key string, value any)
}

// DataConnector retrieves data from an onboard API and keeps it in its cache
type DataConnector struct {
	// APIURL is the base URL the API can be reached under
	APIURL string

	storage Storage
}

type Option func(*DataConnector)

// WithStorage replaces the default in-memory cache
func WithStorage(storage Storage) Option {
	return func(c *DataConnector) {
		c.storage = storage
	}
}

func NewDataConnector(apiURL string, opts ...Option) *DataConnector {
	c := &DataConnector{
		APIURL:  apiURL,
		storage: NewMemoryStorage(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Load returns the cached value for key or fallback if nothing is cached
func (c *DataConnector) Load(key string, fallback any) any {
	if value, ok := c.storage.Load(key); ok {
		return value
	}

	return fallback
}

func (c *DataConnector) Store(key string, value any) {
	c.storage.Store(key, value)
}

// Get returns the cached value for key and fails with ErrKeyNotFound if nothing is cached
func (c *DataConnector) Get(key string) (any, error) {
	value, ok := c.storage.Load(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return value, nil
}

func (c *DataConnector) Set(key string, value any) {
	c.storage.Store(key, value)
}

func (c *DataConnector) Keys() []string {
	return c.storage.Keys()
}

func (c *DataConnector) Storage() Storage {
	return c.storage
}

// Reset discards everything in the cache
func (c *DataConnector) Reset() {
	c.storage.Clear()
}

// LoadAs is Load for a typed value, a value of another type counts as missing
func LoadAs[T any](c *DataConnector, key string, fallback T) T {
	value, ok := c.storage.Load(key)
	if !ok {
		return fallback
	}

	typed, ok := value.(T)
	if !ok {
		return fallback
	}

	return typed
}

// GetAs is Get for a typed value
func GetAs[T any](c *DataConnector, key string) (T, error) {
	var empty T

	value, err := c.Get(key)
	if err != nil {
		return empty, err
	}

	typed, ok := value.(T)
	if !ok {
		return empty, fmt.Errorf("cached value for %s is %T not %T", key, value, empty)
	}

	return typed, nil
}

// StoreResult calls fn and stores its result under key before returning it.
// Nothing is stored when fn fails.
func StoreResult[T any](storer Storer, key string, fn func() (T, error)) (T, error) {
	result, err := fn()
	if err != nil {
		return result, err
	}

	storer.Store(key, result)

	return result, nil
}
