package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickload-admin/internal/common/config"
)

func TestRedisClient_PingAndClose(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := NewRedis(config.RedisConfig{Address: mr.Addr(), PoolSize: 2})

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, 2, c.Client.Options().PoolSize)
	assert.NoError(t, c.Close())
}

func TestRedisClient_PingFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	c := NewRedis(config.RedisConfig{Address: addr})
	defer c.Close()

	err = c.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
	assert.Contains(t, err.Error(), addr)
}

func TestNewRedis_Defaults(t *testing.T) {
	c := NewRedis(config.RedisConfig{Address: "localhost:6379"})
	defer c.Close()

	assert.Equal(t, defaultPoolSize, c.Client.Options().PoolSize)
	assert.Equal(t, defaultDialTimeout, c.Client.Options().DialTimeout)
}
