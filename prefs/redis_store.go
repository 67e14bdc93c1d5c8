package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis client methods used by RedisStore.
// Keeping it as an interface enables mocking in tests.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisStoreConfig configures a RedisStore.
type RedisStoreConfig struct {
	Address  string
	Password string
	DB       int
	// Prefix namespaces every key, e.g. "workdesk:".
	Prefix string
	// TTL expires entries; 0 keeps them forever.
	TTL time.Duration
}

// RedisStore implements Store on a Redis instance.
type RedisStore struct {
	cfg    RedisStoreConfig
	client RedisClient
}

// NewRedisStore connects to Redis with the given config.
func NewRedisStore(cfg RedisStoreConfig) *RedisStore {
	return &RedisStore{
		cfg: cfg,
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewRedisStoreWithClient creates a RedisStore backed by a pre-built client.
// This is intended for testing.
func NewRedisStoreWithClient(cfg RedisStoreConfig, client RedisClient) *RedisStore {
	return &RedisStore{cfg: cfg, client: client}
}

func (s *RedisStore) key(k string) string {
	return s.cfg.Prefix + k
}

// Get returns the stored value for key.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read pref %q: %w", key, err)
	}
	return v, true, nil
}

// Set stores or replaces the value for key.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("write pref %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("delete pref %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
