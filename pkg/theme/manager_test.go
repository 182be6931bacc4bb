package theme

import (
	"context"
	"testing"

	gotheme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/palette"
	"github.com/goliatone/go-sitekit/pkg/prefs"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
)

type recorded struct {
	mode      string
	persisted bool
}

type captureRecorder struct {
	calls []recorded
}

func (r *captureRecorder) RecordThemeChange(mode string, persisted bool) {
	r.calls = append(r.calls, recorded{mode: mode, persisted: persisted})
}

func newManager(t *testing.T, store prefs.Store, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithPreferences(prefs.New(store))}, opts...)
	m, err := NewManager(opts...)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestToggle_AppliesPaletteAndPersists(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore(nil)
	recorder := &captureRecorder{}
	m := newManager(t, store, WithRecorder(recorder))
	doc := testsupport.MustParse(t, testsupport.SamplePage)

	state := m.Toggle(ctx, doc, DefaultState())
	if !state.IsDark() {
		t.Fatalf("expected dark after first toggle, got %s", state.Mode)
	}
	if !dom.HasClass(doc.Body(), BodyClass) {
		t.Fatalf("expected body flagged with %s", BodyClass)
	}

	checks := []struct {
		selector string
		property string
		want     string
	}{
		{"body", "background-color", "#0F2F1F"},
		{"body", "color", "#E6F4EC"},
		{"header", "background-color", "#143D2A"},
		{"header h1", "color", "#E6F4EC"},
		{"h2", "color", "#9AD8B3"},
		{"h3", "color", "#7FCFA3"},
		{"h4", "color", "#62B880"},
		{"nav", "background-color", "#0B2418"},
		{"footer", "background-color", "#143D2A"},
		{".cooking-card", "background-color", "#1C4F36"},
		{"form", "padding", "20px"},
		{"form label", "color", "#E6F4EC"},
		{"textarea", "border-color", "#62B880"},
		{"select", "background-color", "#0F2F1F"},
		{"button", "color", "#0F2F1F"},
	}
	for _, check := range checks {
		if got := dom.Property(doc.First(check.selector), check.property); got != check.want {
			t.Fatalf("%s %s: want %q, got %q", check.selector, check.property, check.want, got)
		}
	}

	if got := store.Snapshot()[PreferenceKey]; got != "dark" {
		t.Fatalf("expected dark persisted, got %q", got)
	}
	if diff := cmp.Diff([]recorded{{mode: "dark", persisted: true}}, recorder.calls, cmp.AllowUnexported(recorded{})); diff != "" {
		t.Fatalf("recorder mismatch (-want +got):\n%s", diff)
	}
}

func TestToggle_TwiceRestoresOriginalDocument(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemoryStore(nil)
	m := newManager(t, store)
	doc := testsupport.MustParse(t, testsupport.SamplePage)
	before := doc.String()

	state := m.Toggle(ctx, doc, DefaultState())
	state = m.Toggle(ctx, doc, state)

	if state.IsDark() {
		t.Fatalf("expected light after second toggle")
	}
	if diff := cmp.Diff(before, doc.String()); diff != "" {
		t.Fatalf("document should match the untoggled page (-want +got):\n%s", diff)
	}
	if got := store.Snapshot()[PreferenceKey]; got != "light" {
		t.Fatalf("expected light persisted, got %q", got)
	}
}

func TestLoadOnStartup(t *testing.T) {
	ctx := context.Background()

	t.Run("dark preference is applied idempotently", func(t *testing.T) {
		store := prefs.NewMemoryStore(map[string]string{PreferenceKey: "dark"})
		m := newManager(t, store)
		doc := testsupport.MustParse(t, testsupport.SamplePage)

		state := m.LoadOnStartup(ctx, doc)
		if !state.IsDark() {
			t.Fatalf("expected dark state")
		}
		once := doc.String()
		m.LoadOnStartup(ctx, doc)
		if diff := cmp.Diff(once, doc.String()); diff != "" {
			t.Fatalf("second load changed the document (-once +twice):\n%s", diff)
		}
	})

	t.Run("light or unknown preference leaves page untouched", func(t *testing.T) {
		for _, stored := range []string{"light", "sepia", "", " dark ", "DARK"} {
			store := prefs.NewMemoryStore(map[string]string{PreferenceKey: stored})
			m := newManager(t, store)
			doc := testsupport.MustParse(t, testsupport.SamplePage)
			before := doc.String()

			if state := m.LoadOnStartup(ctx, doc); state.IsDark() {
				t.Fatalf("stored %q: expected light", stored)
			}
			if doc.String() != before {
				t.Fatalf("stored %q: document changed", stored)
			}
		}
	})
}

func TestToggle_WorksWithoutStorage(t *testing.T) {
	ctx := context.Background()
	recorder := &captureRecorder{}
	m := newManager(t, prefs.UnavailableStore{}, WithRecorder(recorder))
	doc := testsupport.MustParse(t, testsupport.SamplePage)

	state := m.Toggle(ctx, doc, DefaultState())
	if !state.IsDark() || !dom.HasClass(doc.Body(), BodyClass) {
		t.Fatalf("toggle should work for the session without storage")
	}
	if recorder.calls[0].persisted {
		t.Fatalf("expected write reported as not persisted")
	}
	if got := m.LoadOnStartup(ctx, testsupport.MustParse(t, testsupport.SamplePage)); got.IsDark() {
		t.Fatalf("nothing was persisted, reload must come back light")
	}
}

func TestToggle_MissingRegionsAreSkipped(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, prefs.NewMemoryStore(nil))
	doc := testsupport.MustParse(t, testsupport.MinimalPage)

	state := m.Toggle(ctx, doc, DefaultState())
	if got := dom.Property(doc.Body(), "background-color"); got != "#0F2F1F" {
		t.Fatalf("body should still be themed, got %q", got)
	}
	m.Toggle(ctx, doc, state)
	if _, ok := dom.Attr(doc.Body(), "style"); ok {
		t.Fatalf("expected body style cleared")
	}
}

func TestNewManager_UnknownThemeFallsBackToDefault(t *testing.T) {
	m, err := NewManager(WithThemeName("missing"))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if got, _ := m.Palette().Value(RegionPage, "background-color"); got != "#0F2F1F" {
		t.Fatalf("expected default dark background, got %q", got)
	}
}

func TestNewManager_ResolvesNamedManifest(t *testing.T) {
	forest := DefaultManifest()
	forest.Name = "forest"
	dark := forest.Variants[DarkVariant]
	tokens := map[string]string{}
	for key, value := range dark.Tokens {
		tokens[key] = value
	}
	tokens["page.background"] = "#002200"
	forest.Variants = map[string]gotheme.Variant{DarkVariant: {Tokens: tokens}}

	m, err := NewManager(WithManifests(forest), WithThemeName("forest"))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if got, _ := m.Palette().Value(RegionPage, "background-color"); got != "#002200" {
		t.Fatalf("expected forest background, got %q", got)
	}
	if got, _ := m.Palette().Value(RegionPage, "transition"); got != "background-color 0.3s ease, color 0.3s ease" {
		t.Fatalf("expected base tokens merged under the variant, got %q", got)
	}
}

func TestNewManager_ManifestWithoutDarkTokensFails(t *testing.T) {
	plain := &gotheme.Manifest{
		Name:    "plain",
		Version: "1.0.0",
		Tokens:  map[string]string{"page.background": "#ffffff"},
	}
	if _, err := NewManager(WithManifests(plain), WithThemeName("plain")); err == nil {
		t.Fatalf("expected error for manifest missing palette tokens")
	}
}

func TestNewManager_CustomTable(t *testing.T) {
	table := palette.Table{Name: "minimal", Regions: []palette.Region{
		{Name: RegionPage, Selector: "body", First: true, Declarations: []palette.Declaration{
			{Property: "color", Token: "page.text"},
		}},
	}}
	m, err := NewManager(WithTable(table))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	doc := testsupport.MustParse(t, testsupport.SamplePage)
	m.Toggle(context.Background(), doc, DefaultState())
	if got := dom.Property(doc.First("header"), "background-color"); got != "" {
		t.Fatalf("custom table should not theme the header, got %q", got)
	}
	if got := dom.Property(doc.Body(), "color"); got != "#E6F4EC" {
		t.Fatalf("expected body color from custom table, got %q", got)
	}
}

func TestParseModeAndToggled(t *testing.T) {
	if mode, ok := ParseMode("dark"); !ok || mode != Dark {
		t.Fatalf("expected dark, got %q (ok=%v)", mode, ok)
	}
	for _, raw := range []string{" dark ", "DARK", "Dark", "auto", ""} {
		if _, ok := ParseMode(raw); ok {
			t.Fatalf("%q is not a stored mode", raw)
		}
	}
	if got := DefaultState().Toggled().Toggled(); got != DefaultState() {
		t.Fatalf("double toggle should be identity, got %+v", got)
	}
}
