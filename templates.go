package sitekit

import (
	"io/fs"

	"github.com/goliatone/go-sitekit/pkg/render/markup"
)

// Templates exposes the embedded fragment templates so callers can inspect
// or override them without importing the markup package directly.
func Templates() fs.FS {
	return markup.Templates()
}
