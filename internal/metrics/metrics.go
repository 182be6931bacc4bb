// Package metrics exposes Prometheus counters for the page runtime.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-sitekit/pkg/page"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	ThemeChangesTotal  *prometheus.CounterVec
	FontSizePixels     prometheus.Gauge
	SubmissionsTotal   *prometheus.CounterVec
	FieldFailuresTotal prometheus.Counter
	StepDuration       *prometheus.HistogramVec
	StepErrorsTotal    *prometheus.CounterVec
	EventsTotal        *prometheus.CounterVec
}

var _ page.Metrics = (*Metrics)(nil)

// New creates the metrics and registers them on registry. A nil registry
// gets a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		ThemeChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitekit_theme_changes_total",
				Help: "Theme toggles by resulting mode and whether the preference was stored",
			},
			[]string{"mode", "persisted"},
		),

		FontSizePixels: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitekit_font_size_pixels",
				Help: "Last body font size set from the keyboard",
			},
		),

		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitekit_form_submissions_total",
				Help: "Form submissions by result",
			},
			[]string{"result"}, // valid, invalid
		),

		FieldFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sitekit_form_field_failures_total",
				Help: "Failing fields across all rejected submissions",
			},
		),

		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sitekit_step_duration_seconds",
				Help:    "Enhancement step duration in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"step"},
		),

		StepErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitekit_step_errors_total",
				Help: "Enhancement step failures",
			},
			[]string{"step"},
		),

		EventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitekit_events_total",
				Help: "Dispatched events by type",
			},
			[]string{"type"},
		),
	}
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordThemeChange(mode string, persisted bool) {
	m.ThemeChangesTotal.WithLabelValues(mode, strconv.FormatBool(persisted)).Inc()
}

func (m *Metrics) RecordFontSize(size int) {
	m.FontSizePixels.Set(float64(size))
}

func (m *Metrics) RecordSubmission(valid bool, failures int) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.SubmissionsTotal.WithLabelValues(result).Inc()
	if failures > 0 {
		m.FieldFailuresTotal.Add(float64(failures))
	}
}

func (m *Metrics) RecordStep(name string, elapsed time.Duration, err error) {
	m.StepDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		m.StepErrorsTotal.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) RecordEvent(eventType string) {
	m.EventsTotal.WithLabelValues(eventType).Inc()
}
