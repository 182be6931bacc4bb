package template

// Filter transforms a value inside a template. param is the filter
// argument, nil when the template passes none.
type Filter func(input any, param any) (any, error)

// TemplateRenderer is the engine contract fragment renderers depend on.
type TemplateRenderer interface {
	// RenderTemplate renders the named template; data overrides globals.
	RenderTemplate(name string, data map[string]any) (string, error)
	RegisterFilter(name string, fn Filter) error
	// GlobalContext merges data into the values every template sees.
	GlobalContext(data map[string]any) error
}
