// Package form validates submitted forms inside a document and renders the
// outcome as error annotations or a transient success notice.
package form

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/goliatone/go-sitekit/pkg/render/markup"
	"github.com/goliatone/go-sitekit/pkg/validation"
)

const (
	ErrorFieldClass     = "error-field"
	ErrorMessageClass   = "error-message"
	SuccessMessageClass = "success-message"

	// SuccessText is the confirmation shown after a valid submission.
	SuccessText = "Форму успішно відправлено!"

	// NoticeTimeout is how long the success notice stays in the form.
	NoticeTimeout = 5000 * time.Millisecond
)

// Scheduler runs fn once after d. Implementations may call fn on another
// goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// TimerScheduler schedules on the runtime timer.
func TimerScheduler() Scheduler { return timerScheduler{} }

// Recorder observes submission outcomes.
type Recorder interface {
	RecordSubmission(valid bool, failures int)
}

type nopRecorder struct{}

func (nopRecorder) RecordSubmission(bool, int) {}

// Annotation is the error marker attached to one failing field.
type Annotation struct {
	Field   string
	Message string
	Target  *html.Node
	Node    *html.Node
}

// Notice is the success confirmation appended to a form.
type Notice struct {
	ID      string
	Message string
	Node    *html.Node
	Expires time.Duration
}

// Outcome is what one submission did to the document.
type Outcome struct {
	Result      validation.Result
	Annotations []Annotation
	Notice      *Notice
}

// Option configures a Validator.
type Option func(*Validator)

// WithRules replaces the contact form rules.
func WithRules(rules []validation.Rule) Option {
	return func(v *Validator) {
		if rules != nil {
			v.rules = rules
		}
	}
}

// WithScheduler sets the scheduler used to remove success notices.
func WithScheduler(s Scheduler) Option {
	return func(v *Validator) {
		if s != nil {
			v.scheduler = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(v *Validator) {
		if r != nil {
			v.recorder = r
		}
	}
}

// WithMarkup sets the fragment renderer.
func WithMarkup(r *markup.Renderer) Option {
	return func(v *Validator) {
		if r != nil {
			v.markup = r
		}
	}
}

// WithIDs sets the notice id generator.
func WithIDs(next func() string) Option {
	return func(v *Validator) {
		if next != nil {
			v.nextID = next
		}
	}
}

// Validator owns the submission contract for every form of a document.
type Validator struct {
	rules     []validation.Rule
	scheduler Scheduler
	logger    *slog.Logger
	recorder  Recorder
	markup    *markup.Renderer
	nextID    func() string
}

// NewValidator builds a Validator with the contact rules, the runtime timer
// and embedded fragment templates unless overridden.
func NewValidator(opts ...Option) (*Validator, error) {
	v := &Validator{}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if err := v.applyDefaults(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Validator) applyDefaults() error {
	if v.rules == nil {
		v.rules = validation.ContactRules()
	}
	if v.scheduler == nil {
		v.scheduler = TimerScheduler()
	}
	if v.logger == nil {
		v.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if v.recorder == nil {
		v.recorder = nopRecorder{}
	}
	if v.nextID == nil {
		v.nextID = func() string { return "success-" + uuid.NewString() }
	}
	if v.markup == nil {
		renderer, err := markup.New()
		if err != nil {
			return err
		}
		v.markup = renderer
	}
	return nil
}

// Rules returns the rule table in evaluation order.
func (v *Validator) Rules() []validation.Rule {
	out := make([]validation.Rule, len(v.rules))
	copy(out, v.rules)
	return out
}
