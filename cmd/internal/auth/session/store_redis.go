package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "echo:session:"

// RedisStore implements Store on top of Redis keys of the form <prefix><token_hash>.
//
// A session is valid while its key exists. Expiry is the key TTL, set by the
// session-creation flow. A stored value of "0" marks an explicitly revoked session
// that has not yet been evicted.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("session: nil redis client")
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (r *RedisStore) key(tokenHash string) string {
	return r.prefix + tokenHash
}

// ValidateSession implements Store.
func (r *RedisStore) ValidateSession(ctx context.Context, tokenHash string) (bool, error) {
	val, err := r.client.Get(ctx, r.key(tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val != "0", nil
}

// Ping implements Pinger.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
