// Package template defines the template engine seam used to produce the
// markup fragments the page inserts (annotations, notices, buttons, footer
// text). Adapters live in sub-packages.
package template
