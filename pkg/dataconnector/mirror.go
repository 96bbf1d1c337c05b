package dataconnector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

// DefaultMirrorPrefix is prepended to every key written to the mirror
const DefaultMirrorPrefix = "onboard:"

// MirroredStorage copies every stored value as JSON into a shared cache so other processes can inspect it.
// Reads are always served from the wrapped Storage, the mirror is write only.
type MirroredStorage struct {
	Storage

	mirror *cache.Cache[string]
	prefix string
}

func NewMirroredStorage(storage Storage, mirror *cache.Cache[string], prefix string) *MirroredStorage {
	return &MirroredStorage{
		Storage: storage,
		mirror:  mirror,
		prefix:  prefix,
	}
}

func (m *MirroredStorage) Store(key string, value any) {
	m.Storage.Store(key, value)

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to encode value for mirror")
		return
	}

	if err := m.mirror.Set(context.Background(), m.prefix+key, string(encoded)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to write value to mirror")
	}
}

func (m *MirroredStorage) Delete(key string) {
	m.Storage.Delete(key)

	if err := m.mirror.Delete(context.Background(), m.prefix+key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to delete value from mirror")
	}
}

func (m *MirroredStorage) Clear() {
	keys := m.Storage.Keys()
	m.Storage.Clear()

	for _, key := range keys {
		if err := m.mirror.Delete(context.Background(), m.prefix+key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to delete value from mirror")
		}
	}
}

// ReadMirrored returns the JSON of a value a MirroredStorage wrote under prefix and key
func ReadMirrored(ctx context.Context, mirror *cache.Cache[string], prefix string, key string) (json.RawMessage, error) {
	value, err := mirror.Get(ctx, prefix+key)
	if errors.Is(err, store.NotFound{}) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	} else if err != nil {
		return nil, err
	}

	return json.RawMessage(value), nil
}
