// Package sitekit applies the interactive layer of a static site to an HTML
// document held in memory.
package sitekit

import (
	"context"
	"io"

	"github.com/goliatone/go-sitekit/pkg/page"
)

// State aliases page.State for callers of the root package.
type State = page.State

// NewPage exposes the page constructor from the top-level module.
func NewPage(options ...page.Option) *page.Page {
	return page.New(options...)
}

// Enhance loads r, runs every enhancement step and writes the resulting
// document to w. It is the simplest entry point for callers that only want
// the initialised markup.
func Enhance(ctx context.Context, r io.Reader, w io.Writer, options ...page.Option) (State, error) {
	p := page.New(options...)
	if err := p.Load(ctx, r); err != nil {
		return State{}, err
	}
	if err := p.Init(ctx); err != nil {
		return State{}, err
	}
	if err := p.Render(w); err != nil {
		return State{}, err
	}
	return p.State(), nil
}
