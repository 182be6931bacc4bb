package palette

import (
	"testing"

	gotheme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-sitekit/pkg/dom"
)

func sampleTable() Table {
	return Table{
		Name: "sample",
		Regions: []Region{
			{
				Name:     "page",
				Selector: "body",
				First:    true,
				Declarations: []Declaration{
					{Property: "background-color", Token: "page.background"},
					{Property: "color", Token: "page.text"},
				},
			},
			{
				Name:     "forms",
				Selector: "form",
				Declarations: []Declaration{
					{Property: "padding", Value: "20px"},
				},
			},
			{
				Name:     "header",
				Selector: "header",
				First:    true,
				Declarations: []Declaration{
					{Property: "background-color", Token: "header.background"},
				},
			},
		},
	}
}

func sampleSelection() *gotheme.Selection {
	return &gotheme.Selection{
		Theme:   "sample",
		Variant: "dark",
		Manifest: &gotheme.Manifest{
			Name:    "sample",
			Version: "1.0.0",
			Tokens: map[string]string{
				"page.background":   "#ffffff",
				"page.text":         "#000000",
				"header.background": "#eeeeee",
			},
			Variants: map[string]gotheme.Variant{
				"dark": {Tokens: map[string]string{
					"page.background": "#0F2F1F",
					"page.text":       "#E6F4EC",
				}},
			},
		},
	}
}

func TestResolve_UsesVariantTokens(t *testing.T) {
	resolved, err := Resolve(sampleTable(), sampleSelection().Tokens())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := []ResolvedRegion{
		{Name: "page", Selector: "body", First: true, Properties: []Property{
			{Name: "background-color", Value: "#0F2F1F"},
			{Name: "color", Value: "#E6F4EC"},
		}},
		{Name: "forms", Selector: "form", Properties: []Property{
			{Name: "padding", Value: "20px"},
		}},
		{Name: "header", Selector: "header", First: true, Properties: []Property{
			{Name: "background-color", Value: "#eeeeee"},
		}},
	}
	if diff := cmp.Diff(want, resolved.Regions); diff != "" {
		t.Fatalf("resolved regions mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_MissingTokenFails(t *testing.T) {
	if _, err := Resolve(sampleTable(), map[string]string{"page.text": "#000"}); err == nil {
		t.Fatalf("expected error for undefined token")
	}
}

func TestApplyRevert_RoundTripsToUnset(t *testing.T) {
	doc, err := dom.ParseString(`<body><main><form id="a"></form><form id="b" style="margin: 0;"></form></main></body>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	before := doc.String()

	resolved, err := Resolve(sampleTable(), sampleSelection().Tokens())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if touched := Apply(doc, resolved); touched != 3 {
		t.Fatalf("expected body and two forms touched, got %d", touched)
	}
	if got := dom.Property(doc.Body(), "background-color"); got != "#0F2F1F" {
		t.Fatalf("body background not applied, got %q", got)
	}
	if got := dom.Property(doc.ByID("b"), "padding"); got != "20px" {
		t.Fatalf("form padding not applied, got %q", got)
	}

	Apply(doc, resolved)
	Revert(doc, sampleTable())

	if diff := cmp.Diff(before, doc.String()); diff != "" {
		t.Fatalf("revert should restore unset state (-want +got):\n%s", diff)
	}
}

func TestRevert_IsLossyForPreexistingInlineValues(t *testing.T) {
	doc, err := dom.ParseString(`<body style="color: purple"></body>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	resolved, err := Resolve(sampleTable(), sampleSelection().Tokens())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	Apply(doc, resolved)
	Revert(doc, sampleTable())

	if got := dom.Property(doc.Body(), "color"); got != "" {
		t.Fatalf("expected color cleared to unset, got %q", got)
	}
}

func TestTable_Properties(t *testing.T) {
	want := []string{"background-color", "color", "padding"}
	if diff := cmp.Diff(want, sampleTable().Properties()); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
}
