package sessions

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type RedisStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisStore(client rueidis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: keyPrefix,
	}
}

// Revoke records the token until ttl elapses; redis expiry drops the key
// once the token could no longer be used anyway.
func (r *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	ms := ttl.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	cmd := r.client.B().Set().Key(r.key(tokenID)).Value("1").PxMilliseconds(ms).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	cmd := r.client.B().Exists().Key(r.key(tokenID)).Build()
	n, err := r.client.Do(ctx, cmd).AsInt64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Do(ctx, r.client.B().Ping().Build()).Error()
}

func (r *RedisStore) key(tokenID string) string {
	return r.prefix + tokenID
}
