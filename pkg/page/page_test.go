package page

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	gotheme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/enhance"
	"github.com/goliatone/go-sitekit/pkg/fontsize"
	"github.com/goliatone/go-sitekit/pkg/form"
	"github.com/goliatone/go-sitekit/pkg/palette"
	"github.com/goliatone/go-sitekit/pkg/prefs"
	"github.com/goliatone/go-sitekit/pkg/testsupport"
	"github.com/goliatone/go-sitekit/pkg/theme"
)

var today = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

type countingMetrics struct {
	mu     sync.Mutex
	events map[string]int
	steps  []string
	themes []string
}

func (m *countingMetrics) RecordThemeChange(mode string, _ bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes = append(m.themes, mode)
}
func (m *countingMetrics) RecordFontSize(int)         {}
func (m *countingMetrics) RecordSubmission(bool, int) {}
func (m *countingMetrics) RecordStep(name string, _ time.Duration, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, name)
}
func (m *countingMetrics) RecordEvent(eventType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.events == nil {
		m.events = map[string]int{}
	}
	m.events[eventType]++
}

func loadPage(t *testing.T, store prefs.Store, opts ...Option) (*Page, *testsupport.ManualScheduler) {
	t.Helper()
	scheduler := &testsupport.ManualScheduler{}
	base := []Option{
		WithPreferences(prefs.New(store)),
		WithScheduler(scheduler),
		WithClock(testsupport.FixedClock(today)),
	}
	p := New(append(base, opts...)...)
	ctx := context.Background()
	if err := p.Load(ctx, strings.NewReader(testsupport.SamplePage)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := p.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	return p, scheduler
}

func TestPage_RequiresLoad(t *testing.T) {
	p := New()
	ctx := context.Background()

	if err := p.Init(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded from Init, got %v", err)
	}
	if err := p.Click(ctx, "button"); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded from Click, got %v", err)
	}
	var sb strings.Builder
	if err := p.Render(&sb); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded from Render, got %v", err)
	}
}

func TestPage_InitRunsStepsOnce(t *testing.T) {
	metrics := &countingMetrics{}
	p, _ := loadPage(t, prefs.NewMemoryStore(nil), WithMetrics(metrics))

	if err := p.Init(context.Background()); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if diff := cmp.Diff(p.Steps(), metrics.steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	if got := p.Count("#" + enhance.ThemeButtonID); got != 1 {
		t.Fatalf("expected one theme button, got %d", got)
	}
	want := "© 2025 Really Good Advices | Сьогодні: 19 жовтня 2026 р."
	if got := p.Text("footer p"); got != want {
		t.Fatalf("expected footer %q, got %q", want, got)
	}
}

func TestPage_SiteFeedsFooterGlobals(t *testing.T) {
	site := enhance.Site{Name: "Advice", Locale: language.English}
	p, _ := loadPage(t, prefs.NewMemoryStore(nil), WithSite(site))

	want := "© 2026 Advice | Сьогодні: October 19, 2026"
	if got := p.Text("footer p"); got != want {
		t.Fatalf("expected footer %q, got %q", want, got)
	}
}

func TestPage_ThemePersistsAcrossReload(t *testing.T) {
	store := prefs.NewMemoryStore(nil)
	metrics := &countingMetrics{}
	p, _ := loadPage(t, store, WithMetrics(metrics))
	ctx := context.Background()

	if err := p.Click(ctx, "#"+enhance.ThemeButtonID); err != nil {
		t.Fatalf("click: %v", err)
	}
	if !p.State().Theme.IsDark() {
		t.Fatalf("expected dark state")
	}

	reloaded, _ := loadPage(t, store)
	if !reloaded.State().Theme.IsDark() {
		t.Fatalf("expected stored dark theme after reload")
	}
	if !strings.Contains(reloaded.HTML(), `class="`+theme.BodyClass+`"`) {
		t.Fatalf("expected body class after reload")
	}
	if diff := cmp.Diff([]string{"dark"}, metrics.themes); diff != "" {
		t.Fatalf("theme metrics mismatch (-want +got):\n%s", diff)
	}
	if metrics.events["click"] != 1 {
		t.Fatalf("expected one click recorded, got %d", metrics.events["click"])
	}
}

func TestPage_ThemeWorksWithoutStorage(t *testing.T) {
	p, _ := loadPage(t, prefs.UnavailableStore{})
	ctx := context.Background()

	if err := p.Click(ctx, "#"+enhance.ThemeButtonID); err != nil {
		t.Fatalf("click: %v", err)
	}
	if !p.State().Theme.IsDark() {
		t.Fatalf("expected session dark theme without storage")
	}
}

func TestPage_ThemeManifestAndPalette(t *testing.T) {
	forest := theme.DefaultManifest()
	forest.Name = "forest"
	tokens := map[string]string{}
	for key, value := range forest.Variants[theme.DarkVariant].Tokens {
		tokens[key] = value
	}
	tokens["page.background"] = "#002200"
	forest.Variants = map[string]gotheme.Variant{theme.DarkVariant: {Tokens: tokens}}

	table := palette.Table{Name: "body-only", Regions: []palette.Region{
		{Name: theme.RegionPage, Selector: "body", First: true, Declarations: []palette.Declaration{
			{Property: "background-color", Token: "page.background"},
		}},
	}}

	p, _ := loadPage(t, prefs.NewMemoryStore(nil),
		WithThemeManifests(forest),
		WithThemeName("forest"),
		WithPalette(table),
	)
	if err := p.Click(context.Background(), "#"+enhance.ThemeButtonID); err != nil {
		t.Fatalf("click: %v", err)
	}
	html := p.HTML()
	if !strings.Contains(html, "#002200") {
		t.Fatalf("expected forest background in page")
	}
	if strings.Contains(html, "#143D2A") {
		t.Fatalf("header colour outside the custom palette should not be applied")
	}
}

func TestPage_KeyDownAdjustsFont(t *testing.T) {
	store := prefs.NewMemoryStore(nil)
	p, _ := loadPage(t, store)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		prevented, err := p.KeyDown(ctx, fontsize.KeyIncrease)
		if err != nil {
			t.Fatalf("keydown: %v", err)
		}
		if !prevented {
			t.Fatalf("expected default prevented")
		}
	}
	if got := p.State().FontSize.Size; got != fontsize.Max {
		t.Fatalf("expected clamped %d, got %d", fontsize.Max, got)
	}
	if got := store.Snapshot()[fontsize.PreferenceKey]; got != "24" {
		t.Fatalf("expected stored 24, got %q", got)
	}

	prevented, err := p.KeyDown(ctx, "Enter")
	if err != nil || prevented {
		t.Fatalf("expected Enter ignored, prevented=%v err=%v", prevented, err)
	}
}

func TestPage_SubmitLifecycle(t *testing.T) {
	p, scheduler := loadPage(t, prefs.NewMemoryStore(nil))
	ctx := context.Background()

	if err := p.Submit(ctx, ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := p.Count("." + form.ErrorMessageClass); got != 5 {
		t.Fatalf("expected 5 annotations, got %d", got)
	}

	fields := map[string]string{
		"#name":         "Олена",
		"#email":        "olena@example.com",
		"#message":      "Дякую за чудові поради!",
		"#contact-type": "email",
		"#contact-info": "olena@example.com",
	}
	for selector, value := range fields {
		if err := p.Fill(selector, value); err != nil {
			t.Fatalf("fill %s: %v", selector, err)
		}
	}
	if err := p.Submit(ctx, "#contact-form"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := p.Count("." + form.ErrorMessageClass); got != 0 {
		t.Fatalf("expected annotations cleared, got %d", got)
	}
	if got := p.Count("." + form.SuccessMessageClass); got != 1 {
		t.Fatalf("expected success notice, got %d", got)
	}

	scheduler.Advance(form.NoticeTimeout)
	if got := p.Count("." + form.SuccessMessageClass); got != 0 {
		t.Fatalf("expected notice removed, got %d", got)
	}
}

func TestPage_MissingTarget(t *testing.T) {
	p, _ := loadPage(t, prefs.NewMemoryStore(nil))

	if err := p.Click(context.Background(), "#nope"); !errors.Is(err, dom.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestPage_HoverAndLeave(t *testing.T) {
	p, _ := loadPage(t, prefs.NewMemoryStore(nil))
	ctx := context.Background()

	if err := p.Hover(ctx, ".home-card"); err != nil {
		t.Fatalf("hover: %v", err)
	}
	if got := p.Count("." + enhance.CardHoverClass); got != 1 {
		t.Fatalf("expected hovered card, got %d", got)
	}
	if err := p.Leave(ctx, ".home-card"); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if got := p.Count("." + enhance.CardHoverClass); got != 0 {
		t.Fatalf("expected hover cleared, got %d", got)
	}
}

func TestPage_CustomSteps(t *testing.T) {
	steps := &enhance.Registry{}
	steps.Register(enhance.StepHomeCards, 1, enhance.HomeCards)
	p, _ := loadPage(t, prefs.NewMemoryStore(nil), WithSteps(steps))

	if got := p.Count("#" + enhance.ThemeButtonID); got != 0 {
		t.Fatalf("expected no theme button, got %d", got)
	}
	if diff := cmp.Diff([]string{enhance.StepHomeCards}, p.Steps()); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestPage_FieldsAndTexts(t *testing.T) {
	p, _ := loadPage(t, prefs.NewMemoryStore(nil))

	fields, err := p.Fields("")
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if len(fields) != 5 || fields[4].Selector != "#contact-info" {
		t.Fatalf("unexpected fields %+v", fields)
	}
	rules := p.Rules()
	if len(rules) != len(fields) {
		t.Fatalf("expected a rule per field, got %d", len(rules))
	}
	for i, rule := range rules {
		if rule.Field != fields[i].Key {
			t.Fatalf("rule %d is for %q, field is %q", i, rule.Field, fields[i].Key)
		}
	}

	if err := p.Submit(context.Background(), ""); err != nil {
		t.Fatalf("submit: %v", err)
	}
	texts := p.Texts("." + form.ErrorMessageClass)
	if len(texts) != 5 || texts[3] != "Оберіть спосіб зв'язку" {
		t.Fatalf("unexpected error texts %q", texts)
	}
}
