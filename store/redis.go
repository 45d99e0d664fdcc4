package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LexaLabs/lexalign"
)

// RedisStore is a Redis-backed settings store. The whole preference bag
// lives under one key as a JSON blob, matching the put-wholesale contract.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL string // Redis connection URL (e.g., "redis://localhost:6379")
	Key string // Key holding the preference bag (default: "lexalign:settings")
}

// NewRedisStore creates a new Redis store with the given configuration.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, &lexalign.StoreError{Message: "parsing redis url", Cause: err}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &lexalign.StoreError{Message: "pinging redis", Cause: err}
	}

	return NewRedisStoreFromClient(client, cfg.Key), nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing Redis client.
func NewRedisStoreFromClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "lexalign:settings"
	}
	return &RedisStore{client: client, key: key}
}

// Get retrieves the raw preference bag. A missing key is an empty bag, not
// an error.
func (s *RedisStore) Get() (map[string]any, error) {
	ctx := context.Background()
	val, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, &lexalign.StoreError{Message: "reading settings", Cause: err}
	}

	var prefs map[string]any
	if err := json.Unmarshal([]byte(val), &prefs); err != nil {
		return nil, &lexalign.StoreError{Message: "decoding settings", Cause: err}
	}
	return prefs, nil
}

// Put replaces the raw preference bag wholesale.
func (s *RedisStore) Put(prefs map[string]any) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return &lexalign.StoreError{Message: "encoding settings", Cause: err}
	}

	ctx := context.Background()
	if err := s.client.Set(ctx, s.key, string(data), 0).Err(); err != nil {
		return &lexalign.StoreError{Message: "writing settings", Cause: err}
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping() error {
	ctx := context.Background()
	return s.client.Ping(ctx).Err()
}

// Verify RedisStore implements SettingsStore
var _ SettingsStore = (*RedisStore)(nil)
