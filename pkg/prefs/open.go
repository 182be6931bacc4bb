package prefs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverDisabled = "disabled"
)

// Config selects and configures a store.
type Config struct {
	Driver   string
	Path     string
	RedisURL string
	Prefix   string
	Timeout  time.Duration
}

// Open builds the store named by cfg.Driver. The returned closer is never
// nil.
func Open(ctx context.Context, cfg Config) (Store, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemoryStore(nil), nopCloser{}, nil
	case DriverDisabled:
		return UnavailableStore{}, nopCloser{}, nil
	case DriverFile:
		store, err := OpenFileStore(cfg.Path)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return store, nopCloser{}, nil
	case DriverSQLite:
		store, err := OpenSQLiteStore(ctx, cfg.Path)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return store, store, nil
	case DriverRedis:
		store, err := OpenRedisStore(ctx, RedisConfig{
			URL:     cfg.RedisURL,
			Prefix:  cfg.Prefix,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, nopCloser{}, err
		}
		return store, store, nil
	default:
		return nil, nopCloser{}, fmt.Errorf("prefs: unknown store driver %q", cfg.Driver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
