// Package palette describes theme overrides as a declarative table keyed by
// logical page region. Tables are resolved against go-theme tokens into
// concrete values, then applied to or reverted from a document in one batch.
package palette

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-sitekit/pkg/dom"
)

// Declaration sets one CSS property. Token names a theme token; Value is a
// literal used when Token is empty.
type Declaration struct {
	Property string
	Token    string
	Value    string
}

// Region is a logical page area and the overrides it receives.
type Region struct {
	Name         string
	Selector     string
	First        bool
	Declarations []Declaration
}

// Table is an ordered list of regions.
type Table struct {
	Name    string
	Regions []Region
}

// Region returns the region called name.
func (t Table) Region(name string) (Region, bool) {
	for _, region := range t.Regions {
		if region.Name == name {
			return region, true
		}
	}
	return Region{}, false
}

// Properties lists every property the table touches, sorted.
func (t Table) Properties() []string {
	seen := map[string]struct{}{}
	for _, region := range t.Regions {
		for _, decl := range region.Declarations {
			seen[strings.ToLower(decl.Property)] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for prop := range seen {
		out = append(out, prop)
	}
	sort.Strings(out)
	return out
}

// Property is a resolved property/value pair.
type Property struct {
	Name  string
	Value string
}

// ResolvedRegion is a region with concrete values.
type ResolvedRegion struct {
	Name       string
	Selector   string
	First      bool
	Properties []Property
}

// Resolved is a table ready to be applied.
type Resolved struct {
	Name    string
	Regions []ResolvedRegion
}

// Value returns the resolved value of property within region.
func (r Resolved) Value(region, property string) (string, bool) {
	for _, candidate := range r.Regions {
		if candidate.Name != region {
			continue
		}
		for _, prop := range candidate.Properties {
			if prop.Name == property {
				return prop.Value, true
			}
		}
	}
	return "", false
}

// Resolve replaces token references with their values. A referenced token
// missing from tokens is an error so a broken manifest is caught before any
// element is touched.
func Resolve(table Table, tokens map[string]string) (Resolved, error) {
	resolved := Resolved{
		Name:    table.Name,
		Regions: make([]ResolvedRegion, 0, len(table.Regions)),
	}
	for _, region := range table.Regions {
		if strings.TrimSpace(region.Selector) == "" {
			return Resolved{}, fmt.Errorf("palette: region %q has no selector", region.Name)
		}
		out := ResolvedRegion{
			Name:       region.Name,
			Selector:   region.Selector,
			First:      region.First,
			Properties: make([]Property, 0, len(region.Declarations)),
		}
		for _, decl := range region.Declarations {
			value := decl.Value
			if decl.Token != "" {
				tokenValue, ok := tokens[decl.Token]
				if !ok || strings.TrimSpace(tokenValue) == "" {
					return Resolved{}, fmt.Errorf("palette: region %q: token %q is not defined", region.Name, decl.Token)
				}
				value = tokenValue
			}
			out.Properties = append(out.Properties, Property{
				Name:  strings.ToLower(strings.TrimSpace(decl.Property)),
				Value: strings.TrimSpace(value),
			})
		}
		resolved.Regions = append(resolved.Regions, out)
	}
	return resolved, nil
}

// Apply overwrites every resolved property on every element of every
// region. Regions absent from the document are skipped.
func Apply(doc *dom.Document, resolved Resolved) int {
	touched := 0
	for _, region := range resolved.Regions {
		for _, node := range targets(doc, region.Selector, region.First) {
			style := dom.StyleOf(node)
			for _, prop := range region.Properties {
				style.Set(prop.Name, prop.Value, false)
			}
			dom.WriteStyle(node, style)
			touched++
		}
	}
	return touched
}

// Revert clears every property the table declares, returning elements to
// their stylesheet appearance. Inline values set before Apply are not
// restored.
func Revert(doc *dom.Document, table Table) int {
	touched := 0
	for _, region := range table.Regions {
		for _, node := range targets(doc, region.Selector, region.First) {
			style := dom.StyleOf(node)
			for _, decl := range region.Declarations {
				style.Remove(decl.Property)
			}
			dom.WriteStyle(node, style)
			touched++
		}
	}
	return touched
}

func targets(doc *dom.Document, selector string, first bool) []*html.Node {
	if doc == nil {
		return nil
	}
	if first {
		if node := doc.First(selector); node != nil {
			return []*html.Node{node}
		}
		return nil
	}
	return doc.All(selector)
}
