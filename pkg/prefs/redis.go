package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "sitekit:prefs:"

// RedisConfig describes how to reach a Redis/Valkey server.
type RedisConfig struct {
	URL     string
	Prefix  string
	Timeout time.Duration
}

// RedisStore keeps each preference as a plain Redis string under Prefix.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// OpenRedisStore connects and pings the server.
func OpenRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("prefs: redis url is required")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("prefs: parse redis url: %w", err)
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("prefs: ping redis: %w", err)
	}
	return NewRedisStore(client, cfg.Prefix), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+normalizeKey(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("prefs: redis get %q: %w", key, err)
	}
	return value, nil
}

// Set implements Store. Preferences never expire.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	key = normalizeKey(key)
	if key == "" {
		return errors.New("prefs: key is required")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("prefs: redis set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
