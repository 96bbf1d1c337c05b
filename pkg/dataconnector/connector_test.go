package dataconnector

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataConnectorLoadAndGet(t *testing.T) {
	connector := NewDataConnector("https://iceportal.de")

	assert.Equal(t, "fallback", connector.Load("status", "fallback"))
	assert.Nil(t, connector.Load("status", nil))

	_, err := connector.Get("status")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorContains(t, err, "status")

	connector.Store("status", 42)
	assert.Equal(t, 42, connector.Load("status", "fallback"))

	value, err := connector.Get("status")
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	connector.Set("trip", "ICE 597")
	assert.Equal(t, []string{"status", "trip"}, connector.Keys())

	connector.Reset()
	assert.Empty(t, connector.Keys())
}

func TestDataConnectorStoresNil(t *testing.T) {
	connector := NewDataConnector("https://iceportal.de")
	connector.Store("bap", nil)

	value, err := connector.Get("bap")
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.Nil(t, connector.Load("bap", "fallback"))
}

func TestDataConnectorWithStorage(t *testing.T) {
	storage := NewMemoryStorage()
	connector := NewDataConnector("https://iceportal.de", WithStorage(storage))

	connector.Store("status", "online")

	value, ok := storage.Load("status")
	assert.True(t, ok)
	assert.Equal(t, "online", value)
	assert.Same(t, storage, connector.Storage())
}

func TestLoadAsAndGetAs(t *testing.T) {
	connector := NewDataConnector("https://iceportal.de")
	connector.Store("speed", 184.5)

	assert.Equal(t, 184.5, LoadAs(connector, "speed", 0.0))
	assert.Equal(t, "none", LoadAs(connector, "speed", "none"))
	assert.Equal(t, 1.0, LoadAs(connector, "missing", 1.0))

	speed, err := GetAs[float64](connector, "speed")
	require.NoError(t, err)
	assert.Equal(t, 184.5, speed)

	_, err = GetAs[string](connector, "speed")
	assert.Error(t, err)

	_, err = GetAs[float64](connector, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestStoreResult(t *testing.T) {
	connector := NewDataConnector("https://iceportal.de")

	result, err := StoreResult(connector, "status", func() (string, error) {
		return "online", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "online", result)
	assert.Equal(t, "online", connector.Load("status", nil))

	failure := errors.New("bad response")
	_, err = StoreResult(connector, "trip", func() (string, error) {
		return "", failure
	})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, "missing", connector.Load("trip", "missing"))
}

func TestConnectivityError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewConnectivityError("https://iceportal.de/api1/rs/status", cause)

	assert.True(t, IsConnectivityError(err))
	assert.True(t, IsConnectivityError(fmt.Errorf("refresh: %w", err)))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsConnectivityError(cause))
	assert.False(t, IsConnectivityError(nil))
}
