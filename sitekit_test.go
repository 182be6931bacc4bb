package sitekit

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sitekit/pkg/page"
	"github.com/goliatone/go-sitekit/pkg/prefs"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
)

func TestEnhance(t *testing.T) {
	store := prefs.NewMemoryStore(map[string]string{"siteTheme": "dark", "fontSize": "18"})

	var out strings.Builder
	state, err := Enhance(context.Background(), strings.NewReader(testsupport.SamplePage), &out,
		page.WithPreferences(prefs.New(store)),
		page.WithClock(testsupport.FixedClock(time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC))),
	)
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if !state.Theme.IsDark() || state.FontSize.Size != 18 {
		t.Fatalf("unexpected state %+v", state)
	}

	html := out.String()
	for _, want := range []string{
		`id="theme-toggle-btn"`,
		`id="show-more-btn"`,
		`novalidate="novalidate"`,
		"19 жовтня 2026 р.",
		"font-size: 18px",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestTemplates(t *testing.T) {
	names, err := fs.Glob(Templates(), "*.tpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	want := []string{
		"accordion_button.tpl",
		"error_message.tpl",
		"footer_date.tpl",
		"success_message.tpl",
		"theme_button.tpl",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
}
