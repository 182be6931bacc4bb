package theme

import (
	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-sitekit/pkg/palette"
)

const (
	// DefaultThemeName names the built-in manifest.
	DefaultThemeName = "sitekit"
	// DarkVariant is the manifest variant holding the dark tokens.
	DarkVariant = "dark"
)

// Region names of the dark palette.
const (
	RegionPage        = "page"
	RegionHeader      = "header"
	RegionHeaderTitle = "header-title"
	RegionHeading2    = "heading-2"
	RegionHeading3    = "heading-3"
	RegionHeading4    = "heading-4"
	RegionNav         = "nav"
	RegionFooter      = "footer"
	RegionCards       = "cards"
	RegionForms       = "forms"
	RegionFormLabels  = "form-labels"
	RegionInputs      = "inputs"
	RegionButtons     = "buttons"
)

// CardSelector matches every card flavour on the site.
const CardSelector = ".home-card, .advice-card, .cooking-card"

// InputSelector matches the themed form controls.
const InputSelector = `input[type="text"], input[type="email"], textarea, select`

// DefaultManifest returns the go-theme manifest carrying the site colours.
// Base tokens are shared; the dark variant holds the palette.
func DefaultManifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"motion.transition": "background-color 0.3s ease, color 0.3s ease",
		},
		Variants: map[string]gotheme.Variant{
			DarkVariant: {
				Tokens: map[string]string{
					"page.background":   "#0F2F1F",
					"page.text":         "#E6F4EC",
					"header.background": "#143D2A",
					"header.text":       "#E6F4EC",
					"heading.h2":        "#9AD8B3",
					"heading.h3":        "#7FCFA3",
					"heading.h4":        "#62B880",
					"nav.background":    "#0B2418",
					"card.background":   "#1C4F36",
					"card.text":         "#E6F4EC",
					"button.background": "#62B880",
					"button.text":       "#0F2F1F",
					"footer.background": "#143D2A",
					"form.background":   "#1C4F36",
					"form.text":         "#E6F4EC",
					"input.background":  "#0F2F1F",
					"input.text":        "#E6F4EC",
					"input.border":      "#62B880",
				},
			},
		},
	}
}

// DarkTable is the region table of the dark palette.
func DarkTable() palette.Table {
	return palette.Table{
		Name: DarkVariant,
		Regions: []palette.Region{
			{Name: RegionPage, Selector: "body", First: true, Declarations: []palette.Declaration{
				{Property: "background-color", Token: "page.background"},
				{Property: "color", Token: "page.text"},
				{Property: "transition", Token: "motion.transition"},
			}},
			{Name: RegionHeader, Selector: "header", First: true, Declarations: []palette.Declaration{
				{Property: "background-color", Token: "header.background"},
			}},
			{Name: RegionHeaderTitle, Selector: "header h1", First: true, Declarations: []palette.Declaration{
				{Property: "color", Token: "header.text"},
			}},
			{Name: RegionHeading2, Selector: "h2", Declarations: []palette.Declaration{
				{Property: "color", Token: "heading.h2"},
			}},
			{Name: RegionHeading3, Selector: "h3", Declarations: []palette.Declaration{
				{Property: "color", Token: "heading.h3"},
			}},
			{Name: RegionHeading4, Selector: "h4", Declarations: []palette.Declaration{
				{Property: "color", Token: "heading.h4"},
			}},
			{Name: RegionNav, Selector: "nav", First: true, Declarations: []palette.Declaration{
				{Property: "background-color", Token: "nav.background"},
			}},
			{Name: RegionFooter, Selector: "footer", First: true, Declarations: []palette.Declaration{
				{Property: "background-color", Token: "footer.background"},
			}},
			{Name: RegionCards, Selector: CardSelector, Declarations: []palette.Declaration{
				{Property: "background-color", Token: "card.background"},
				{Property: "color", Token: "card.text"},
			}},
			{Name: RegionForms, Selector: "form", Declarations: []palette.Declaration{
				{Property: "background-color", Token: "form.background"},
				{Property: "padding", Value: "20px"},
				{Property: "border-radius", Value: "8px"},
			}},
			{Name: RegionFormLabels, Selector: "form label", Declarations: []palette.Declaration{
				{Property: "color", Token: "form.text"},
			}},
			{Name: RegionInputs, Selector: InputSelector, Declarations: []palette.Declaration{
				{Property: "background-color", Token: "input.background"},
				{Property: "color", Token: "input.text"},
				{Property: "border-color", Token: "input.border"},
			}},
			{Name: RegionButtons, Selector: "button", Declarations: []palette.Declaration{
				{Property: "background-color", Token: "button.background"},
				{Property: "color", Token: "button.text"},
			}},
		},
	}
}
