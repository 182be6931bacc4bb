// Package fontsize implements the keyboard-driven body font size control.
package fontsize

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/prefs"
)

const (
	// PreferenceKey is the storage key of the font size.
	PreferenceKey = "fontSize"

	Min     = 10
	Max     = 24
	Default = 16

	KeyIncrease = "ArrowUp"
	KeyDecrease = "ArrowDown"
)

// State is the current body font size in pixels.
type State struct {
	Size int
}

// DefaultState is the stylesheet size.
func DefaultState() State {
	return State{Size: Default}
}

// Clamp bounds size to [Min, Max].
func Clamp(size int) int {
	switch {
	case size < Min:
		return Min
	case size > Max:
		return Max
	default:
		return size
	}
}

// Increase returns the state one pixel larger, clamped.
func (s State) Increase() State {
	return State{Size: Clamp(s.Size + 1)}
}

// Decrease returns the state one pixel smaller, clamped.
func (s State) Decrease() State {
	return State{Size: Clamp(s.Size - 1)}
}

// CSS renders the size as a font-size value.
func (s State) CSS() string {
	return strconv.Itoa(s.Size) + "px"
}

// Recorder observes size changes.
type Recorder interface {
	RecordFontSize(size int)
}

type nopRecorder struct{}

func (nopRecorder) RecordFontSize(int) {}

// Controller applies and persists font size changes.
type Controller struct {
	prefs    *prefs.Preferences
	logger   *slog.Logger
	recorder Recorder
}

// Option customises a Controller.
type Option func(*Controller)

// WithPreferences sets the preference boundary.
func WithPreferences(p *prefs.Preferences) Option {
	return func(c *Controller) {
		if p != nil {
			c.prefs = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder registers a size observer.
func WithRecorder(recorder Recorder) Option {
	return func(c *Controller) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

// NewController builds a controller; without preferences nothing persists.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.prefs == nil {
		c.prefs = prefs.New(nil, prefs.WithLogger(c.logger))
	}
	return c
}

// Load reads the stored size. A stored value is clamped and written to the
// body; without one the page keeps its stylesheet size.
func (c *Controller) Load(ctx context.Context, doc *dom.Document) State {
	size, ok := c.prefs.Int(ctx, PreferenceKey, Default)
	if !ok {
		return DefaultState()
	}
	state := State{Size: Clamp(size)}
	c.Render(doc, state)
	return state
}

// Render writes state onto the body.
func (c *Controller) Render(doc *dom.Document, state State) {
	dom.SetProperty(doc.Body(), "font-size", state.CSS(), false)
}

// HandleKey reacts to ArrowUp/ArrowDown. handled reports whether the key was
// consumed, in which case the default scroll must be suppressed.
func (c *Controller) HandleKey(ctx context.Context, doc *dom.Document, state State, key string) (State, bool) {
	var next State
	switch key {
	case KeyIncrease:
		next = state.Increase()
	case KeyDecrease:
		next = state.Decrease()
	default:
		return state, false
	}

	c.Render(doc, next)
	c.prefs.SetInt(ctx, PreferenceKey, next.Size)
	c.recorder.RecordFontSize(next.Size)
	c.logger.DebugContext(ctx, "font size changed", "key", key, "size", next.Size)
	return next, true
}
