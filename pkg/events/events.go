// Package events is a small synchronous event dispatcher over html nodes.
package events

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/net/html"
)

// Type names the events the page reacts to.
type Type string

const (
	Submit     Type = "submit"
	Click      Type = "click"
	MouseEnter Type = "mouseenter"
	MouseLeave Type = "mouseleave"
	KeyDown    Type = "keydown"
)

// Bubbles reports whether the event travels up to ancestors and the
// document after its target.
func (t Type) Bubbles() bool {
	switch t {
	case Submit, Click, KeyDown:
		return true
	default:
		return false
	}
}

// Event is one user interaction.
type Event struct {
	Type   Type
	Target *html.Node
	Key    string

	current          *html.Node
	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the native action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops delivery to further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// CurrentTarget is the node whose handler is running, nil for document
// handlers.
func (e *Event) CurrentTarget() *html.Node { return e.current }

// Handler reacts to an event.
type Handler func(ctx context.Context, ev *Event) error

type listener struct {
	node    *html.Node
	typ     Type
	handler Handler
}

// Dispatcher stores listeners per node and on the document. It does not
// serialise handlers; callers own that.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []listener
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// On registers handler for typ on node. A nil node registers a document
// handler.
func (d *Dispatcher) On(node *html.Node, typ Type, handler Handler) {
	if handler == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener{node: node, typ: typ, handler: handler})
}

// OnDocument registers a document handler.
func (d *Dispatcher) OnDocument(typ Type, handler Handler) {
	d.On(nil, typ, handler)
}

// Count returns how many handlers are registered for typ on node.
func (d *Dispatcher) Count(node *html.Node, typ Type) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	count := 0
	for _, l := range d.listeners {
		if l.node == node && l.typ == typ {
			count++
		}
	}
	return count
}

// Reset drops every listener.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	d.listeners = nil
	d.mu.Unlock()
}

// Dispatch delivers ev to the target, then to ancestors and the document
// when the type bubbles. Keydown events without a target go straight to the
// document. Every handler runs even when an earlier one fails; failures are
// joined.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *Event) error {
	if ev == nil {
		return nil
	}

	path := []*html.Node{}
	if ev.Target != nil {
		path = append(path, ev.Target)
		if ev.Type.Bubbles() {
			for n := ev.Target.Parent; n != nil; n = n.Parent {
				if n.Type == html.ElementNode {
					path = append(path, n)
				}
			}
		}
	}
	if ev.Target == nil || ev.Type.Bubbles() {
		path = append(path, nil)
	}

	var errs []error
	for _, node := range path {
		ev.current = node
		for _, handler := range d.handlersFor(node, ev.Type) {
			if err := handler(ctx, ev); err != nil {
				errs = append(errs, err)
			}
		}
		if ev.stopped {
			break
		}
	}
	ev.current = nil
	return errors.Join(errs...)
}

func (d *Dispatcher) handlersFor(node *html.Node, typ Type) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []Handler
	for _, l := range d.listeners {
		if l.node == node && l.typ == typ {
			out = append(out, l.handler)
		}
	}
	return out
}
