package theme

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/palette"
	"github.com/goliatone/go-sitekit/pkg/prefs"
)

const (
	// PreferenceKey is the storage key of the theme preference.
	PreferenceKey = "siteTheme"
	// BodyClass flags the body while the dark palette is active.
	BodyClass = "dark-theme"
)

// Recorder observes theme transitions.
type Recorder interface {
	RecordThemeChange(mode string, persisted bool)
}

type nopRecorder struct{}

func (nopRecorder) RecordThemeChange(string, bool) {}

// Option customises a Manager.
type Option func(*Manager)

// WithPreferences sets the preference boundary. Without it the manager
// behaves as if storage were disabled.
func WithPreferences(p *prefs.Preferences) Option {
	return func(m *Manager) {
		if p != nil {
			m.prefs = p
		}
	}
}

// WithSelector resolves palette tokens through a go-theme selector.
func WithSelector(selector gotheme.ThemeSelector) Option {
	return func(m *Manager) {
		if selector != nil {
			m.selector = selector
		}
	}
}

// WithManifests registers extra manifests next to DefaultManifest. Ignored
// when WithSelector supplies the selector.
func WithManifests(manifests ...*gotheme.Manifest) Option {
	return func(m *Manager) {
		m.manifests = append(m.manifests, manifests...)
	}
}

// WithThemeName selects the manifest used for the dark tokens. Unknown
// names fall back to DefaultThemeName.
func WithThemeName(name string) Option {
	return func(m *Manager) {
		m.themeName = name
	}
}

// WithTable replaces the dark region table.
func WithTable(table palette.Table) Option {
	return func(m *Manager) {
		m.table = table
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRecorder registers a transition observer.
func WithRecorder(recorder Recorder) Option {
	return func(m *Manager) {
		if recorder != nil {
			m.recorder = recorder
		}
	}
}

// Manager applies and persists the theme of a page.
type Manager struct {
	prefs     *prefs.Preferences
	selector  gotheme.ThemeSelector
	themeName string
	manifests []*gotheme.Manifest
	table     palette.Table
	resolved  palette.Resolved
	logger    *slog.Logger
	recorder  Recorder
}

// NewManager resolves the dark palette up front so a broken manifest fails
// at construction rather than on the first toggle.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		table:    DarkTable(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	if m.prefs == nil {
		m.prefs = prefs.New(nil, prefs.WithLogger(m.logger))
	}
	if m.selector == nil {
		registry := gotheme.NewRegistry()
		for _, manifest := range append([]*gotheme.Manifest{DefaultManifest()}, m.manifests...) {
			if err := registry.Register(manifest); err != nil {
				return nil, fmt.Errorf("theme: register manifest: %w", err)
			}
		}
		m.selector = gotheme.Selector{
			Registry:       registry,
			DefaultTheme:   DefaultThemeName,
			DefaultVariant: DarkVariant,
		}
	}

	selection, err := m.selector.Select(m.themeName, DarkVariant)
	if err != nil {
		return nil, fmt.Errorf("theme: select dark variant: %w", err)
	}
	resolved, err := palette.Resolve(m.table, selection.Tokens())
	if err != nil {
		return nil, fmt.Errorf("theme: resolve dark palette: %w", err)
	}
	m.resolved = resolved
	return m, nil
}

// Palette returns the resolved dark palette.
func (m *Manager) Palette() palette.Resolved {
	return m.resolved
}

// Table returns the dark region table.
func (m *Manager) Table() palette.Table {
	return m.table
}

// Render makes doc show state without touching storage. Rendering the same
// state twice leaves the document unchanged.
func (m *Manager) Render(doc *dom.Document, state State) {
	body := doc.Body()
	if state.IsDark() {
		dom.AddClass(body, BodyClass)
		palette.Apply(doc, m.resolved)
		return
	}
	dom.RemoveClass(body, BodyClass)
	palette.Revert(doc, m.table)
}

// Toggle flips current, renders the result and persists it.
func (m *Manager) Toggle(ctx context.Context, doc *dom.Document, current State) State {
	next := current.Toggled()
	m.Render(doc, next)
	persisted := m.prefs.SetString(ctx, PreferenceKey, next.Mode.String())
	m.recorder.RecordThemeChange(next.Mode.String(), persisted)
	m.logger.DebugContext(ctx, "theme toggled", "mode", next.Mode, "persisted", persisted)
	return next
}

// LoadOnStartup reads the stored preference and renders it. Only a stored
// dark preference changes the document; anything else leaves the stylesheet
// theme in place.
func (m *Manager) LoadOnStartup(ctx context.Context, doc *dom.Document) State {
	raw, _ := m.prefs.String(ctx, PreferenceKey, "")
	mode, ok := ParseMode(raw)
	if !ok || mode != Dark {
		return DefaultState()
	}
	state := State{Mode: Dark}
	m.Render(doc, state)
	m.logger.DebugContext(ctx, "stored theme applied", "mode", state.Mode)
	return state
}
