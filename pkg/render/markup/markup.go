// Package markup renders the small HTML fragments the page inserts at
// runtime. Fragments come from embedded pongo2 templates, pass through a
// bluemonday policy and are parsed into detached html nodes ready to be
// attached to a document.
package markup

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-sitekit/pkg/locale"
	"github.com/goliatone/go-sitekit/pkg/render/template"
	"github.com/goliatone/go-sitekit/pkg/render/template/pongo"
)

//go:embed templates/*.tpl
var embedded embed.FS

// Template names.
const (
	ErrorMessage    = "error_message"
	SuccessMessage  = "success_message"
	AccordionButton = "accordion_button"
	ThemeButton     = "theme_button"
	FooterDate      = "footer_date"
)

// LongDateFilter formats a time.Time as a long date in the locale given as
// the filter argument: {{ today|longdate:locale }}.
const LongDateFilter = "longdate"

// Templates returns the embedded fragment templates.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("markup: embedded templates: %v", err))
	}
	return sub
}

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "p", "span", "button", "strong", "em")
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("id").Matching(regexp.MustCompile(`^[A-Za-z0-9_-]+$`)).Globally()
		policy.AllowAttrs("type").Matching(regexp.MustCompile(`^(button|submit|reset)$`)).OnElements("button")
		fragmentPolicy = policy
	})
	return fragmentPolicy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine swaps the template engine.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithPolicy swaps the sanitising policy.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithGlobals seeds values every template sees, such as the site name.
func WithGlobals(globals map[string]any) Option {
	return func(r *Renderer) {
		if r.globals == nil {
			r.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			r.globals[key] = value
		}
	}
}

// Renderer turns named templates into detached nodes.
type Renderer struct {
	engine  template.TemplateRenderer
	policy  *bluemonday.Policy
	globals map[string]any
}

// New builds a Renderer backed by the embedded templates unless an engine
// is supplied.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		engine, err := pongo.New(Templates())
		if err != nil {
			return nil, fmt.Errorf("markup: template engine: %w", err)
		}
		r.engine = engine
	}
	if err := r.engine.RegisterFilter(LongDateFilter, longDate); err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}
	if err := r.engine.GlobalContext(r.globals); err != nil {
		return nil, fmt.Errorf("markup: globals: %w", err)
	}
	if r.policy == nil {
		r.policy = fragmentSanitizer()
	}
	return r, nil
}

// HTML renders and sanitises a template.
func (r *Renderer) HTML(name string, data map[string]any) (string, error) {
	raw, err := r.engine.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("markup: render %s: %w", name, err)
	}
	return strings.TrimSpace(r.policy.Sanitize(raw)), nil
}

// Fragment renders a template into detached nodes parsed in a <div>
// context.
func (r *Renderer) Fragment(name string, data map[string]any) ([]*html.Node, error) {
	markup, err := r.HTML(name, data)
	if err != nil {
		return nil, err
	}
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("markup: parse %s: %w", name, err)
	}
	return nodes, nil
}

// Element renders a template expected to produce a single element.
func (r *Renderer) Element(name string, data map[string]any) (*html.Node, error) {
	nodes, err := r.Fragment(name, data)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n, nil
		}
	}
	return nil, fmt.Errorf("markup: %s: %w", name, errNoElement)
}

var errNoElement = errors.New("template produced no element")

func longDate(input any, param any) (any, error) {
	t, ok := input.(time.Time)
	if !ok {
		return nil, fmt.Errorf("%s: want time.Time, got %T", LongDateFilter, input)
	}
	tag := locale.Default
	if raw, ok := param.(string); ok {
		tag = locale.Parse(raw)
	}
	return locale.LongDate(t, tag), nil
}
