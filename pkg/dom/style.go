package dom

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Declaration is one inline CSS property.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Style is the ordered inline declaration block of an element, the Go
// counterpart of element.style.
type Style struct {
	decls []Declaration
}

// ParseStyle reads a style attribute value. Unparseable input yields an
// empty style, matching how browsers drop invalid declarations.
func ParseStyle(raw string) Style {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Style{}
	}
	parsed, err := parser.ParseDeclarations(raw)
	if err != nil {
		return Style{}
	}
	style := Style{decls: make([]Declaration, 0, len(parsed))}
	for _, decl := range parsed {
		if decl == nil {
			continue
		}
		style.Set(decl.Property, decl.Value, decl.Important)
	}
	return style
}

// Len returns the number of declarations.
func (s Style) Len() int {
	return len(s.decls)
}

// Declarations returns a copy of the declarations in source order.
func (s Style) Declarations() []Declaration {
	return append([]Declaration(nil), s.decls...)
}

// Get looks up a property.
func (s Style) Get(property string) (Declaration, bool) {
	property = normalizeProperty(property)
	for _, decl := range s.decls {
		if decl.Property == property {
			return decl, true
		}
	}
	return Declaration{}, false
}

// Value returns the value of property or "" when unset.
func (s Style) Value(property string) string {
	decl, _ := s.Get(property)
	return decl.Value
}

// Set writes property in place, appending when it is new. An empty value
// removes the property, as assigning "" through element.style does.
func (s *Style) Set(property, value string, important bool) {
	property = normalizeProperty(property)
	value = strings.TrimSpace(value)
	if property == "" {
		return
	}
	if value == "" {
		s.Remove(property)
		return
	}
	for i := range s.decls {
		if s.decls[i].Property == property {
			s.decls[i].Value = value
			s.decls[i].Important = important
			return
		}
	}
	s.decls = append(s.decls, Declaration{Property: property, Value: value, Important: important})
}

// Remove drops property and reports whether it was present.
func (s *Style) Remove(property string) bool {
	property = normalizeProperty(property)
	for i := range s.decls {
		if s.decls[i].Property == property {
			s.decls = append(s.decls[:i], s.decls[i+1:]...)
			return true
		}
	}
	return false
}

// String serialises the block the way cssText does.
func (s Style) String() string {
	if len(s.decls) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.decls))
	for _, decl := range s.decls {
		part := decl.Property + ": " + decl.Value
		if decl.Important {
			part += " !important"
		}
		parts = append(parts, part+";")
	}
	return strings.Join(parts, " ")
}

// StyleOf returns the inline style of n.
func StyleOf(n *html.Node) Style {
	raw, _ := Attr(n, "style")
	return ParseStyle(raw)
}

// WriteStyle stores style on n, dropping the attribute when empty.
func WriteStyle(n *html.Node, style Style) {
	if n == nil {
		return
	}
	if style.Len() == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", style.String())
}

// SetProperty mirrors element.style.setProperty.
func SetProperty(n *html.Node, property, value string, important bool) {
	if n == nil {
		return
	}
	style := StyleOf(n)
	style.Set(property, value, important)
	WriteStyle(n, style)
}

// RemoveProperty mirrors element.style.removeProperty.
func RemoveProperty(n *html.Node, property string) {
	if n == nil {
		return
	}
	style := StyleOf(n)
	if style.Remove(property) {
		WriteStyle(n, style)
	}
}

// Property returns the inline value of property on n.
func Property(n *html.Node, property string) string {
	return StyleOf(n).Value(property)
}

func normalizeProperty(property string) string {
	return strings.ToLower(strings.TrimSpace(property))
}
