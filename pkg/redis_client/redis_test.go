package redis_client

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	server := miniredis.RunT(t)
	t.Setenv("ONBOARD_REDIS_ADDRESS", server.Addr())
	t.Setenv("ONBOARD_REDIS_DATABASE", "0")

	require.NoError(t, Connect())
	t.Cleanup(func() {
		Client.Close()
	})

	mirror := NewMirrorCache(Client)
	require.NoError(t, mirror.Set(context.Background(), "onboard:test:status", `{"tzn":"Tz9027"}`))

	value, err := server.Get("onboard:test:status")
	require.NoError(t, err)
	assert.Equal(t, `{"tzn":"Tz9027"}`, value)
	assert.Equal(t, MirrorExpiration, server.TTL("onboard:test:status"))
}

func TestConnectInvalidDatabase(t *testing.T) {
	t.Setenv("ONBOARD_REDIS_DATABASE", "first")

	assert.Error(t, Connect())
}
