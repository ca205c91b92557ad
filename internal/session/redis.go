package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "quickload-admin/internal/common/errors"
)

// RedisStore keeps tokens in Redis so a restart does not sign the operator out.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisStore stores keys as prefix+"accessToken" / prefix+"refreshToken".
// ttl of zero means the keys never expire.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(name string) string {
	return r.prefix + name
}

func (r *RedisStore) get(ctx context.Context, name string) (string, error) {
	val, err := r.client.Get(ctx, r.key(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewSessionStoreError("get "+name, err)
	}
	return val, nil
}

func (r *RedisStore) set(ctx context.Context, name, value string) error {
	if err := r.client.Set(ctx, r.key(name), value, r.ttl).Err(); err != nil {
		return apperrors.NewSessionStoreError("set "+name, err)
	}
	return nil
}

func (r *RedisStore) GetToken(ctx context.Context) (string, error) {
	return r.get(ctx, KeyAccessToken)
}

func (r *RedisStore) SetToken(ctx context.Context, token string) error {
	return r.set(ctx, KeyAccessToken, token)
}

func (r *RedisStore) ClearToken(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(KeyAccessToken)).Err(); err != nil {
		return apperrors.NewSessionStoreError("clear accessToken", err)
	}
	return nil
}

func (r *RedisStore) GetRefreshToken(ctx context.Context) (string, error) {
	return r.get(ctx, KeyRefreshToken)
}

func (r *RedisStore) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	if err := r.set(ctx, KeyAccessToken, accessToken); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}
	return r.set(ctx, KeyRefreshToken, refreshToken)
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key(KeyAccessToken), r.key(KeyRefreshToken)).Err(); err != nil {
		return apperrors.NewSessionStoreError("clear", err)
	}
	return nil
}
