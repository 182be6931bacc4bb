package page

import (
	"log/slog"
	"time"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitekit/pkg/enhance"
	"github.com/goliatone/go-sitekit/pkg/fontsize"
	"github.com/goliatone/go-sitekit/pkg/form"
	"github.com/goliatone/go-sitekit/pkg/palette"
	"github.com/goliatone/go-sitekit/pkg/prefs"
	"github.com/goliatone/go-sitekit/pkg/theme"
	"github.com/goliatone/go-sitekit/pkg/validation"
)

// Metrics receives every observation the page runtime makes.
type Metrics interface {
	theme.Recorder
	fontsize.Recorder
	form.Recorder
	enhance.Recorder
	RecordEvent(eventType string)
}

// Option customises the page configuration.
type Option func(*Page)

// WithPreferences injects the preference store wrapper.
func WithPreferences(p *prefs.Preferences) Option {
	return func(pg *Page) {
		pg.prefs = p
	}
}

// WithLogger sets the structured logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(pg *Page) {
		pg.logger = logger
	}
}

// WithScheduler sets the scheduler used for deferred work. Callbacks are run
// under the page lock.
func WithScheduler(s form.Scheduler) Option {
	return func(pg *Page) {
		pg.scheduler = s
	}
}

// WithClock overrides the clock used for the footer date.
func WithClock(now func() time.Time) Option {
	return func(pg *Page) {
		pg.now = now
	}
}

// WithRules replaces the form validation rules.
func WithRules(rules []validation.Rule) Option {
	return func(pg *Page) {
		pg.rules = rules
	}
}

// WithSteps replaces the initialisation registry.
func WithSteps(steps *enhance.Registry) Option {
	return func(pg *Page) {
		pg.steps = steps
	}
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m Metrics) Option {
	return func(pg *Page) {
		pg.metrics = m
	}
}

// WithSite sets the footer site description.
func WithSite(site enhance.Site) Option {
	return func(pg *Page) {
		pg.site = site
		pg.siteSet = true
	}
}

// WithThemeSelector sets where the dark palette tokens come from.
func WithThemeSelector(selector gotheme.ThemeSelector) Option {
	return func(pg *Page) {
		pg.selector = selector
	}
}

// WithThemeName picks the manifest the dark tokens are read from.
func WithThemeName(name string) Option {
	return func(pg *Page) {
		pg.themeName = name
	}
}

// WithThemeManifests registers manifests next to the built-in one.
func WithThemeManifests(manifests ...*gotheme.Manifest) Option {
	return func(pg *Page) {
		pg.manifests = append(pg.manifests, manifests...)
	}
}

// WithPalette replaces the dark region table.
func WithPalette(table palette.Table) Option {
	return func(pg *Page) {
		pg.table = &table
	}
}
