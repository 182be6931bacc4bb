// Package pongo implements template.TemplateRenderer on flosch/pongo2 over
// an fs.FS of ".tpl" files.
package pongo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-sitekit/pkg/render/template"
)

// Extension is appended to template names that do not carry it.
const Extension = ".tpl"

// pongo2 keeps filters in one process-wide table.
var (
	filtersMu sync.Mutex
	ownFilter = map[string]bool{}
)

// Engine renders named templates and caches them once parsed.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine loading templates from files.
func New(files fs.FS) (*Engine, error) {
	if files == nil {
		return nil, errors.New("pongo: template fs is required")
	}
	return &Engine{
		set:   pongo2.NewSet("sitekit", pongo2.NewFSLoader(files)),
		cache: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate renders name, appending Extension when missing.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}

	e.mu.RLock()
	out, err := tmpl.Execute(pongo2.Context(data))
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: execute %q: %w", name, err)
	}
	return out, nil
}

// RegisterFilter installs fn as a pongo2 filter. Registering a name this
// package already installed is a no-op; clashing with a pongo2 builtin or a
// filter installed elsewhere is an error.
func (e *Engine) RegisterFilter(name string, fn template.Filter) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}

	filtersMu.Lock()
	defer filtersMu.Unlock()

	if ownFilter[name] {
		return nil
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	err := pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		out, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(out), nil
	})
	if err != nil {
		return fmt.Errorf("pongo: register filter %q: %w", name, err)
	}
	ownFilter[name] = true
	return nil
}

// GlobalContext merges data into the set globals.
func (e *Engine) GlobalContext(data map[string]any) error {
	if e == nil || e.set == nil {
		return errors.New("pongo: engine is nil")
	}
	for key := range data {
		if strings.TrimSpace(key) == "" {
			return errors.New("pongo: global with empty name")
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context, len(data))
	}
	e.set.Globals.Update(pongo2.Context(data))
	return nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	path := strings.TrimSpace(name)
	if !strings.HasSuffix(path, Extension) {
		path += Extension
	}

	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}
