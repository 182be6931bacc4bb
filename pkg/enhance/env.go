// Package enhance holds the ordered initialisation steps that turn a static
// page into the interactive one: card styling, footer date, accordion, theme
// button, hover effects, font control, form validation and the stored
// theme.
package enhance

import (
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/events"
	"github.com/goliatone/go-sitekit/pkg/fontsize"
	"github.com/goliatone/go-sitekit/pkg/form"
	"github.com/goliatone/go-sitekit/pkg/locale"
	"github.com/goliatone/go-sitekit/pkg/render/markup"
	"github.com/goliatone/go-sitekit/pkg/theme"
)

// Site describes the footer text.
type Site struct {
	Name   string
	Year   int
	Locale language.Tag
}

// DefaultSite is the site the templates were written for.
func DefaultSite() Site {
	return Site{
		Name:   "Really Good Advices",
		Year:   2025,
		Locale: locale.Default,
	}
}

// Globals is the template context shared by every fragment. A zero Year
// becomes the year of now.
func (s Site) Globals(now time.Time) map[string]any {
	year := s.Year
	if year == 0 {
		year = now.Year()
	}
	return map[string]any{
		"site":   s.Name,
		"year":   year,
		"locale": s.Locale.String(),
	}
}

// Session is the mutable UI state shared by event handlers.
type Session struct {
	Theme theme.State
	Font  fontsize.State
}

// Recorder observes step execution.
type Recorder interface {
	RecordStep(name string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) RecordStep(string, time.Duration, error) {}

// Env is everything a step may touch. Handlers registered by steps keep a
// reference to it and mutate Session; callers serialise dispatch.
type Env struct {
	Doc      *dom.Document
	Events   *events.Dispatcher
	Theme    *theme.Manager
	Font     *fontsize.Controller
	Forms    *form.Validator
	Markup   *markup.Renderer
	Session  *Session
	Now      func() time.Time
	Logger   *slog.Logger
	Recorder Recorder
}

func (e *Env) logger() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}

func (e *Env) recorder() Recorder {
	if e == nil || e.Recorder == nil {
		return nopRecorder{}
	}
	return e.Recorder
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
