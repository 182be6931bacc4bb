package prefs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Preferences is the side-effecting boundary between page state and the
// store. Reads fall back to defaults and writes are dropped whenever the
// store fails; failures are logged, never returned.
type Preferences struct {
	store  Store
	logger *slog.Logger
}

// Option configures Preferences.
type Option func(*Preferences)

// WithLogger sets the logger used to report degraded storage.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Preferences) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New wraps store. A nil store behaves as unavailable storage.
func New(store Store, opts ...Option) *Preferences {
	if store == nil {
		store = UnavailableStore{}
	}
	p := &Preferences{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Store returns the wrapped store.
func (p *Preferences) Store() Store {
	return p.store
}

// String returns the stored value for key, or fallback with ok=false when
// the key is missing or storage is unavailable.
func (p *Preferences) String(ctx context.Context, key, fallback string) (string, bool) {
	value, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.logger.WarnContext(ctx, "preference read failed, using default",
				"key", key, "error", err)
		}
		return fallback, false
	}
	return value, true
}

// SetString writes key and reports whether the value was persisted.
func (p *Preferences) SetString(ctx context.Context, key, value string) bool {
	if err := p.store.Set(ctx, key, value); err != nil {
		p.logger.WarnContext(ctx, "preference write dropped",
			"key", key, "error", err)
		return false
	}
	return true
}

// Int reads key as a base-10 integer. Values that do not start with digits
// fall back; trailing garbage after the digits is ignored.
func (p *Preferences) Int(ctx context.Context, key string, fallback int) (int, bool) {
	raw, ok := p.String(ctx, key, "")
	if !ok {
		return fallback, false
	}
	value, ok := leadingInt(raw)
	if !ok {
		p.logger.DebugContext(ctx, "preference is not numeric, using default",
			"key", key, "value", raw)
		return fallback, false
	}
	return value, true
}

// SetInt writes key as a base-10 integer.
func (p *Preferences) SetInt(ctx context.Context, key string, value int) bool {
	return p.SetString(ctx, key, strconv.Itoa(value))
}

// leadingInt parses the optional sign and digits at the start of raw, the
// way parseInt does for values like "18px".
func leadingInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	value, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, false
	}
	return value, true
}
