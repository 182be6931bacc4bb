package enhance

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Built-in step names.
const (
	StepHomeCards      = "home-cards"
	StepFooterDate     = "footer-date"
	StepAccordion      = "accordion"
	StepThemeButton    = "theme-button"
	StepNavHighlight   = "nav-highlight"
	StepCardHover      = "card-hover"
	StepFontControl    = "font-control"
	StepFormValidation = "form-validation"
	StepThemeLoad      = "theme-load"
)

// Func is one initialisation step.
type Func func(ctx context.Context, env *Env) error

type step struct {
	name     string
	priority int
	run      Func
	order    int
}

// Registry orders initialisation steps. Higher priority runs first; ties
// fall back to registration order. The zero value is an empty registry.
type Registry struct {
	mu    sync.RWMutex
	steps []step
}

// NewRegistry constructs a registry with the built-in steps registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a step. Registering an existing name replaces it in place
// of the older registration.
func (r *Registry) Register(name string, priority int, fn Func) {
	if r == nil || fn == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.steps {
		if r.steps[idx].name == trimmed {
			r.steps[idx].priority = priority
			r.steps[idx].run = fn
			return
		}
	}
	r.steps = append(r.steps, step{
		name:     trimmed,
		priority: priority,
		run:      fn,
		order:    len(r.steps),
	})
}

// Remove drops a step by name.
func (r *Registry) Remove(name string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.steps {
		if r.steps[idx].name == name {
			r.steps = append(r.steps[:idx], r.steps[idx+1:]...)
			return true
		}
	}
	return false
}

// Names returns the step names in execution order.
func (r *Registry) Names() []string {
	ordered := r.ordered()
	names := make([]string, len(ordered))
	for idx, entry := range ordered {
		names[idx] = entry.name
	}
	return names
}

// Run executes every step in order and stops at the first failure.
func (r *Registry) Run(ctx context.Context, env *Env) error {
	for _, entry := range r.ordered() {
		if err := r.runStep(ctx, env, entry); err != nil {
			return err
		}
	}
	return nil
}

// RunStep executes a single named step.
func (r *Registry) RunStep(ctx context.Context, env *Env, name string) error {
	for _, entry := range r.ordered() {
		if entry.name == name {
			return r.runStep(ctx, env, entry)
		}
	}
	return fmt.Errorf("enhance: unknown step %q", name)
}

func (r *Registry) runStep(ctx context.Context, env *Env, entry step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := entry.run(ctx, env)
	env.recorder().RecordStep(entry.name, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("enhance: step %s: %w", entry.name, err)
	}
	env.logger().DebugContext(ctx, "step done", "step", entry.name)
	return nil
}

func (r *Registry) ordered() []step {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	steps := append([]step(nil), r.steps...)
	r.mu.RUnlock()

	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].priority == steps[j].priority {
			return steps[i].order < steps[j].order
		}
		return steps[i].priority > steps[j].priority
	})
	return steps
}

func (r *Registry) registerBuiltins() {
	r.Register(StepHomeCards, 100, HomeCards)
	r.Register(StepFooterDate, 90, FooterDate)
	r.Register(StepAccordion, 80, Accordion)
	r.Register(StepThemeButton, 70, ThemeButton)
	r.Register(StepNavHighlight, 60, NavHighlight)
	r.Register(StepCardHover, 50, CardHover)
	r.Register(StepFontControl, 40, FontControl)
	r.Register(StepFormValidation, 30, FormValidation)
	r.Register(StepThemeLoad, 20, ThemeLoad)
}
