// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quickload-admin/internal/common/config"
)

// A dashboard session holds two keys, so a handful of connections suffice.
const (
	defaultPoolSize    = 4
	defaultDialTimeout = 5 * time.Second
)

// RedisClient is the connection behind the Redis session store.
type RedisClient struct {
	Client *redis.Client
	addr   string
}

// NewRedis builds the client without dialing; Ping checks reachability.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	dialTimeout := defaultDialTimeout
	if cfg.DialTimeout > 0 {
		dialTimeout = config.GetDuration(cfg.DialTimeout)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     poolSize,
	})
	return &RedisClient{Client: rdb, addr: cfg.Address}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("session redis at %s unreachable: %w", c.addr, err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
