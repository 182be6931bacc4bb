package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-sitekit/pkg/page"
	"github.com/goliatone/go-sitekit/pkg/prefs"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
)

func TestRecorders(t *testing.T) {
	m := New(nil)

	m.RecordThemeChange("dark", true)
	m.RecordThemeChange("dark", true)
	m.RecordFontSize(18)
	m.RecordSubmission(false, 3)
	m.RecordSubmission(true, 0)
	m.RecordStep("accordion", time.Millisecond, nil)
	m.RecordStep("accordion", time.Millisecond, errors.New("boom"))
	m.RecordEvent("click")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ThemeChangesTotal.WithLabelValues("dark", "true")))
	assert.Equal(t, 18.0, testutil.ToFloat64(m.FontSizePixels))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("valid")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.FieldFailuresTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StepErrorsTotal.WithLabelValues("accordion")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("click")))
}

func TestPageWiring(t *testing.T) {
	m := New(nil)
	p := page.New(
		page.WithPreferences(prefs.New(prefs.NewMemoryStore(nil))),
		page.WithScheduler(&testsupport.ManualScheduler{}),
		page.WithMetrics(m),
	)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx, strings.NewReader(testsupport.SamplePage)))
	require.NoError(t, p.Init(ctx))
	require.NoError(t, p.Submit(ctx, "form"))
	require.NoError(t, p.Click(ctx, "#theme-toggle-btn"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("invalid")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.FieldFailuresTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ThemeChangesTotal.WithLabelValues("dark", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("submit")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "sitekit_step_duration_seconds")
}
