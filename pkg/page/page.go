// Package page ties the enhancement steps, the event dispatcher and the
// preference store into one runtime that behaves like the live page: load a
// document, initialise it, feed it user events, render the result.
package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/enhance"
	"github.com/goliatone/go-sitekit/pkg/events"
	"github.com/goliatone/go-sitekit/pkg/fontsize"
	"github.com/goliatone/go-sitekit/pkg/form"
	"github.com/goliatone/go-sitekit/pkg/palette"
	"github.com/goliatone/go-sitekit/pkg/prefs"
	"github.com/goliatone/go-sitekit/pkg/render/markup"
	"github.com/goliatone/go-sitekit/pkg/theme"
	"github.com/goliatone/go-sitekit/pkg/validation"
)

// ErrNotLoaded is returned by operations that need a document before Load.
var ErrNotLoaded = errors.New("page: no document loaded")

// State is a snapshot of the session state.
type State struct {
	Theme    theme.State
	FontSize fontsize.State
}

// Page is one browser tab. Every dispatch and every scheduled callback runs
// under the page lock, one at a time.
type Page struct {
	mu sync.Mutex

	prefs     *prefs.Preferences
	logger    *slog.Logger
	scheduler form.Scheduler
	now       func() time.Time
	rules     []validation.Rule
	steps     *enhance.Registry
	metrics   Metrics
	site      enhance.Site
	siteSet   bool
	selector  gotheme.ThemeSelector
	themeName string
	manifests []*gotheme.Manifest
	table     *palette.Table

	manager   *theme.Manager
	font      *fontsize.Controller
	validator *form.Validator
	markup    *markup.Renderer

	doc         *dom.Document
	dispatcher  *events.Dispatcher
	env         *enhance.Env
	initialised bool

	initialiseErr error
}

// New constructs a Page. Missing dependencies get the built-in
// implementations: unavailable storage, the runtime timer, the contact form
// rules and every enhancement step.
func New(options ...Option) *Page {
	p := &Page{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

func (p *Page) applyDefaults() {
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.prefs == nil {
		p.prefs = prefs.New(nil, prefs.WithLogger(p.logger))
	}
	if p.scheduler == nil {
		p.scheduler = form.TimerScheduler()
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.steps == nil {
		p.steps = enhance.NewRegistry()
	}
	if p.metrics == nil {
		p.metrics = nopMetrics{}
	}
	if !p.siteSet {
		p.site = enhance.DefaultSite()
	}

	renderer, err := markup.New(markup.WithGlobals(p.site.Globals(p.now())))
	if err != nil {
		p.initialiseErr = fmt.Errorf("page: markup: %w", err)
		return
	}
	p.markup = renderer

	themeOpts := []theme.Option{
		theme.WithPreferences(p.prefs),
		theme.WithLogger(p.logger),
		theme.WithRecorder(p.metrics),
	}
	if p.selector != nil {
		themeOpts = append(themeOpts, theme.WithSelector(p.selector))
	}
	if p.themeName != "" {
		themeOpts = append(themeOpts, theme.WithThemeName(p.themeName))
	}
	if len(p.manifests) > 0 {
		themeOpts = append(themeOpts, theme.WithManifests(p.manifests...))
	}
	if p.table != nil {
		themeOpts = append(themeOpts, theme.WithTable(*p.table))
	}
	manager, err := theme.NewManager(themeOpts...)
	if err != nil {
		p.initialiseErr = fmt.Errorf("page: theme: %w", err)
		return
	}
	p.manager = manager

	p.font = fontsize.NewController(
		fontsize.WithPreferences(p.prefs),
		fontsize.WithLogger(p.logger),
		fontsize.WithRecorder(p.metrics),
	)

	validator, err := form.NewValidator(
		form.WithRules(p.rules),
		form.WithScheduler(lockedScheduler{inner: p.scheduler, mu: &p.mu}),
		form.WithLogger(p.logger),
		form.WithRecorder(p.metrics),
		form.WithMarkup(renderer),
	)
	if err != nil {
		p.initialiseErr = fmt.Errorf("page: form: %w", err)
		return
	}
	p.validator = validator
}

// Load parses the document and discards any previous one together with its
// handlers.
func (p *Page) Load(ctx context.Context, r io.Reader) error {
	if err := p.initialiseErr; err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := dom.Parse(r)
	if err != nil {
		return fmt.Errorf("page: load: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc = doc
	p.dispatcher = events.NewDispatcher()
	p.env = &enhance.Env{
		Doc:      doc,
		Events:   p.dispatcher,
		Theme:    p.manager,
		Font:     p.font,
		Forms:    p.validator,
		Markup:   p.markup,
		Session:  &enhance.Session{Theme: theme.DefaultState(), Font: fontsize.DefaultState()},
		Now:      p.now,
		Logger:   p.logger,
		Recorder: p.metrics,
	}
	p.initialised = false
	p.logger.DebugContext(ctx, "document loaded")
	return nil
}

// Init runs the enhancement steps once per loaded document.
func (p *Page) Init(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return ErrNotLoaded
	}
	if p.initialised {
		return nil
	}
	if err := p.steps.Run(ctx, p.env); err != nil {
		return err
	}
	p.initialised = true
	p.logger.InfoContext(ctx, "page initialised", "steps", len(p.steps.Names()))
	return nil
}

// Dispatch delivers ev to the document handlers.
func (p *Page) Dispatch(ctx context.Context, ev *events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return ErrNotLoaded
	}
	if ev == nil {
		return nil
	}
	p.metrics.RecordEvent(string(ev.Type))
	return p.dispatcher.Dispatch(ctx, ev)
}

// Click clicks the first element matching selector.
func (p *Page) Click(ctx context.Context, selector string) error {
	_, err := p.dispatchOn(ctx, events.Click, selector)
	return err
}

// Submit submits the first form matching selector, "form" when empty.
func (p *Page) Submit(ctx context.Context, selector string) error {
	if strings.TrimSpace(selector) == "" {
		selector = "form"
	}
	_, err := p.dispatchOn(ctx, events.Submit, selector)
	return err
}

// Hover moves the pointer onto the first element matching selector.
func (p *Page) Hover(ctx context.Context, selector string) error {
	_, err := p.dispatchOn(ctx, events.MouseEnter, selector)
	return err
}

// Leave moves the pointer off the first element matching selector.
func (p *Page) Leave(ctx context.Context, selector string) error {
	_, err := p.dispatchOn(ctx, events.MouseLeave, selector)
	return err
}

// KeyDown presses key on the document and reports whether a handler
// suppressed the default action.
func (p *Page) KeyDown(ctx context.Context, key string) (bool, error) {
	ev := &events.Event{Type: events.KeyDown, Key: key}
	if err := p.Dispatch(ctx, ev); err != nil {
		return false, err
	}
	return ev.DefaultPrevented(), nil
}

// Fill types value into the first form control matching selector.
func (p *Page) Fill(selector, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return ErrNotLoaded
	}
	field, err := p.doc.MustFirst(selector)
	if err != nil {
		return err
	}
	form.SetValue(field, value)
	return nil
}

func (p *Page) dispatchOn(ctx context.Context, typ events.Type, selector string) (*events.Event, error) {
	p.mu.Lock()
	if p.doc == nil {
		p.mu.Unlock()
		return nil, ErrNotLoaded
	}
	target, err := p.doc.MustFirst(selector)
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}

	ev := &events.Event{Type: typ, Target: target}
	if err := p.Dispatch(ctx, ev); err != nil {
		return ev, err
	}
	return ev, nil
}

// Render writes the current document.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return ErrNotLoaded
	}
	return p.doc.Render(w)
}

// HTML returns the current document markup, or "" before Load.
func (p *Page) HTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return ""
	}
	return p.doc.String()
}

// State snapshots the session state.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.env == nil {
		return State{Theme: theme.DefaultState(), FontSize: fontsize.DefaultState()}
	}
	return State{Theme: p.env.Session.Theme, FontSize: p.env.Session.Font}
}

// Count returns how many elements match selector.
func (p *Page) Count(selector string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return 0
	}
	return len(p.doc.All(selector))
}

// Text returns the text of the first element matching selector.
func (p *Page) Text(selector string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return ""
	}
	return dom.Text(p.doc.First(selector))
}

// Texts returns the text of every element matching selector.
func (p *Page) Texts(selector string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return nil
	}
	nodes := p.doc.All(selector)
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, strings.TrimSpace(dom.Text(n)))
	}
	return out
}

// Fields describes the validated controls of the first form matching
// selector, "form" when empty.
func (p *Page) Fields(selector string) ([]form.Field, error) {
	if strings.TrimSpace(selector) == "" {
		selector = "form"
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil {
		return nil, ErrNotLoaded
	}
	target, err := p.doc.MustFirst(selector)
	if err != nil {
		return nil, err
	}
	return form.Describe(target, p.validator.Rules()), nil
}

// Rules returns the form validation rules in effect.
func (p *Page) Rules() []validation.Rule {
	if p.validator == nil {
		return nil
	}
	return p.validator.Rules()
}

// Steps returns the initialisation order.
func (p *Page) Steps() []string {
	return p.steps.Names()
}

type lockedScheduler struct {
	inner form.Scheduler
	mu    *sync.Mutex
}

func (s lockedScheduler) AfterFunc(d time.Duration, fn func()) {
	s.inner.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		fn()
	})
}

type nopMetrics struct{}

func (nopMetrics) RecordThemeChange(string, bool)          {}
func (nopMetrics) RecordFontSize(int)                      {}
func (nopMetrics) RecordSubmission(bool, int)              {}
func (nopMetrics) RecordStep(string, time.Duration, error) {}
func (nopMetrics) RecordEvent(string)                      {}
