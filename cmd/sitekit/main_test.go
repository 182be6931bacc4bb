package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-sitekit/internal/config"
	"github.com/goliatone/go-sitekit/internal/logging"
	"github.com/goliatone/go-sitekit/internal/metrics"
	"github.com/goliatone/go-sitekit/pkg/form"
	"github.com/goliatone/go-sitekit/pkg/prefs"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
)

func writePage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.html")
	if err := os.WriteFile(path, []byte(testsupport.SamplePage), 0o600); err != nil {
		t.Fatalf("write page: %v", err)
	}
	return path
}

func missingEnv(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func newTestApp(t *testing.T, store *prefs.MemoryStore) *app {
	t.Helper()
	cfg, err := config.Load("", missingEnv(t))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return &app{
		cfg:     cfg,
		logger:  logging.Discard(),
		prefs:   prefs.New(store),
		metrics: metrics.New(nil),
		stdout:  &bytes.Buffer{},
	}
}

func do(router http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ShowsEnhancedPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(newTestApp(t, prefs.NewMemoryStore(nil)), writePage(t))

	rec := do(router, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, want := range []string{`id="theme-toggle-btn"`, `id="show-more-btn"`, "Сьогодні:"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestRouter_ThemeTogglePersists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := prefs.NewMemoryStore(nil)
	router := newRouter(newTestApp(t, store), writePage(t))

	rec := do(router, http.MethodPost, "/theme", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := store.Snapshot()["siteTheme"]; got != "dark" {
		t.Fatalf("expected stored theme dark, got %q", got)
	}

	rec = do(router, http.MethodGet, "/", nil)
	if !strings.Contains(rec.Body.String(), "dark-theme") {
		t.Fatalf("expected reloaded page to carry the dark class")
	}
}

func TestRouter_FontKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := prefs.NewMemoryStore(nil)
	router := newRouter(newTestApp(t, store), writePage(t))

	if rec := do(router, http.MethodPost, "/font", url.Values{"key": {"up"}}); rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := store.Snapshot()["fontSize"]; got != "17" {
		t.Fatalf("expected stored font size 17, got %q", got)
	}
	if rec := do(router, http.MethodPost, "/font", url.Values{"key": {"left"}}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown key, got %d", rec.Code)
	}
}

func TestRouter_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(newTestApp(t, prefs.NewMemoryStore(nil)), writePage(t))

	rec := do(router, http.MethodPost, "/submit", url.Values{"name": {"ab"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "принаймні 3 символи") {
		t.Fatalf("expected name error in body")
	}

	rec = do(router, http.MethodPost, "/submit", url.Values{
		"name":        {"Олена"},
		"email":       {"olena@example.com"},
		"message":     {"Дякую за корисні поради"},
		"contactType": {"phone"},
		"contactInfo": {"+380501234567"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), form.SuccessText) {
		t.Fatalf("expected success notice in body")
	}
}

func TestRouter_Metrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := newRouter(newTestApp(t, prefs.NewMemoryStore(nil)), writePage(t))

	do(router, http.MethodPost, "/theme", nil)
	rec := do(router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "sitekit_theme_changes_total") {
		t.Fatalf("expected theme counter in metrics output")
	}
}

func TestSubmitCommand_ReportsErrors(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"submit", writePage(t), "--env-file", missingEnv(t), "--set", "#name=ab"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "принаймні 3 символи") {
		t.Fatalf("expected name error in report, got:\n%s", out.String())
	}
}

func TestSubmitCommand_RejectsMalformedSet(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"submit", writePage(t), "--env-file", missingEnv(t), "--set", "#name"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for --set without value")
	}
}

func TestThemeCommand_WritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.html")
	cmd := newRootCmd()
	var report bytes.Buffer
	cmd.SetOut(&report)
	cmd.SetArgs([]string{"theme", writePage(t), "--env-file", missingEnv(t), "-o", out})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(report.String(), "dark") {
		t.Fatalf("expected dark theme in report, got:\n%s", report.String())
	}
	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(html), "dark-theme") {
		t.Fatalf("expected written page to carry the dark class")
	}
}
