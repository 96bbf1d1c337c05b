// Package lazycache holds values that are expensive to fetch and only needed on demand.
// A value is fetched on first read and re-fetched once its time to live has passed.
package lazycache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a fetched value stays valid unless configured otherwise
const DefaultTTL = 60 * time.Second

// FetchFunc returns the up to date value for the entity with the given identifier.
// Returning false marks the value as absent, which makes the next read fetch again.
type FetchFunc[T any] func(ctx context.Context, id string) (T, bool, error)

type Attribute[T any] struct {
	mutex sync.Mutex

	id    string
	ttl   time.Duration
	fetch FetchFunc[T]
	now   func() time.Time

	value      T
	present    bool
	validUntil time.Time
}

type Option[T any] func(*Attribute[T])

func WithTTL[T any](ttl time.Duration) Option[T] {
	return func(a *Attribute[T]) {
		a.ttl = ttl
	}
}

// WithClock replaces time.Now as the source of the current time
func WithClock[T any](now func() time.Time) Option[T] {
	return func(a *Attribute[T]) {
		a.now = now
	}
}

// WithValue seeds the attribute with an already known value
func WithValue[T any](value T) Option[T] {
	return func(a *Attribute[T]) {
		a.value = value
		a.present = true
	}
}

// New creates an attribute that loads its value for id through fetch
func New[T any](id string, fetch FetchFunc[T], opts ...Option[T]) *Attribute[T] {
	a := &Attribute[T]{
		id:    id,
		ttl:   DefaultTTL,
		fetch: fetch,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Static creates an attribute that always returns value and never fetches
func Static[T any](value T) *Attribute[T] {
	return New[T]("", nil, WithValue(value))
}

// Get returns the cached value, fetching it first when nothing is cached yet or the cache has expired
func (a *Attribute[T]) Get(ctx context.Context) (T, error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.fetch == nil {
		return a.value, nil
	}

	if a.now().After(a.validUntil) || !a.present {
		return a.refetch(ctx)
	}

	return a.value, nil
}

func (a *Attribute[T]) refetch(ctx context.Context) (T, error) {
	value, present, err := a.fetch(ctx, a.id)
	if err != nil {
		var empty T
		return empty, err
	}

	a.value = value
	a.present = present
	a.validUntil = a.now().Add(a.ttl)

	return value, nil
}

// Present reports whether a value has been stored
func (a *Attribute[T]) Present() bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.present
}

func (a *Attribute[T]) ValidUntil() time.Time {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return a.validUntil
}

// Invalidate forces the next read to fetch again
func (a *Attribute[T]) Invalidate() {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.validUntil = time.Time{}
}

func (a *Attribute[T]) ID() string {
	return a.id
}
