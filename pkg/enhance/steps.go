package enhance

import (
	"context"

	"golang.org/x/net/html"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/events"
	"github.com/goliatone/go-sitekit/pkg/render/markup"
	"github.com/goliatone/go-sitekit/pkg/theme"
)

// Element ids and classes the steps create.
const (
	AccordionButtonID = "show-more-btn"
	HideableSectionID = "hideable-section"
	ThemeButtonID     = "theme-toggle-btn"

	NavHighlightClass = "nav-highlight"
	CardHoverClass    = "js-card-hover"

	IconSelector = ".home-card-icon, .card-icon"
)

// Button labels.
const (
	ShowMoreLabel   = "Показати більше"
	HideLabel       = "Приховати"
	ThemeButtonText = "Змінити тему"
)

func setAll(n *html.Node, decls ...dom.Declaration) {
	style := dom.StyleOf(n)
	for _, decl := range decls {
		style.Set(decl.Property, decl.Value, decl.Important)
	}
	dom.WriteStyle(n, style)
}

func decl(property, value string) dom.Declaration {
	return dom.Declaration{Property: property, Value: value}
}

// HomeCards gives every .home-card its light card colours.
func HomeCards(_ context.Context, env *Env) error {
	for _, card := range env.Doc.All(".home-card") {
		setAll(card,
			decl("background-color", "#f0f8ff"),
			decl("color", "#2c3e50"),
		)
	}
	return nil
}

// FooterDate replaces the first footer paragraph with the copyright line
// and today's date in the site locale.
func FooterDate(_ context.Context, env *Env) error {
	target := env.Doc.First("footer p")
	if target == nil {
		return nil
	}
	nodes, err := env.Markup.Fragment(markup.FooterDate, map[string]any{
		"today": env.now(),
	})
	if err != nil {
		return err
	}
	dom.ReplaceChildren(target, nodes...)
	return nil
}

// Accordion hides the last section of main behind a toggle button. The
// button is created once per document.
func Accordion(_ context.Context, env *Env) error {
	main := env.Doc.First("main")
	if main == nil || env.Doc.ByID(AccordionButtonID) != nil {
		return nil
	}
	sections := dom.Within(main, "section")
	if len(sections) == 0 {
		return nil
	}
	section := sections[len(sections)-1]
	dom.SetAttr(section, "id", HideableSectionID)

	button, err := env.Markup.Element(markup.AccordionButton, map[string]any{"label": ShowMoreLabel})
	if err != nil {
		return err
	}
	setAll(button,
		decl("padding", "10px 20px"),
		decl("cursor", "pointer"),
		decl("margin-top", "20px"),
		decl("margin-bottom", "10px"),
		decl("display", "block"),
	)
	dom.InsertBefore(section, button)
	dom.SetProperty(section, "display", "none", false)

	env.Events.On(button, events.Click, func(context.Context, *events.Event) error {
		if dom.Property(section, "display") == "none" {
			dom.SetProperty(section, "display", "block", false)
			dom.SetText(button, HideLabel)
			return nil
		}
		dom.SetProperty(section, "display", "none", false)
		dom.SetText(button, ShowMoreLabel)
		return nil
	})
	return nil
}

// ThemeButton adds the theme toggle to the header. Clicking it flips the
// session theme through the manager.
func ThemeButton(_ context.Context, env *Env) error {
	if env.Doc.ByID(ThemeButtonID) != nil {
		return nil
	}
	header := env.Doc.First("header")
	if header == nil {
		return nil
	}

	button, err := env.Markup.Element(markup.ThemeButton, map[string]any{"label": ThemeButtonText})
	if err != nil {
		return err
	}
	setAll(button,
		decl("position", "absolute"),
		decl("right", "20px"),
		decl("top", "20px"),
		decl("padding", "10px 15px"),
		decl("cursor", "pointer"),
		decl("border-radius", "20px"),
		decl("border", "none"),
		decl("background-color", "#fff"),
		decl("box-shadow", "0 2px 8px rgba(0, 0, 0, 0.15)"),
	)
	dom.SetProperty(header, "position", "relative", false)
	header.AppendChild(button)

	env.Events.On(button, events.Click, func(ctx context.Context, _ *events.Event) error {
		env.Session.Theme = env.Theme.Toggle(ctx, env.Doc, env.Session.Theme)
		return nil
	})
	return nil
}

// NavHighlight highlights navigation links while hovered.
func NavHighlight(_ context.Context, env *Env) error {
	for _, link := range env.Doc.All("nav a") {
		env.Events.On(link, events.MouseEnter, func(context.Context, *events.Event) error {
			dom.AddClass(link, NavHighlightClass)
			setAll(link,
				decl("background-color", "#E6F4EC"),
				decl("color", "#29693F"),
				decl("padding", "5px 10px"),
				decl("border-radius", "15px"),
				decl("transition", "all 0.3s"),
			)
			return nil
		})
		env.Events.On(link, events.MouseLeave, func(context.Context, *events.Event) error {
			dom.RemoveClass(link, NavHighlightClass)
			dom.RemoveProperty(link, "background-color")
			dom.RemoveProperty(link, "color")
			dom.RemoveProperty(link, "padding")
			return nil
		})
	}
	return nil
}

// CardHover lifts cards while hovered and restores the inline transform and
// shadow they had when the step ran. Icons inside a card scale with it.
func CardHover(_ context.Context, env *Env) error {
	for _, card := range env.Doc.All(theme.CardSelector) {
		originalTransform := dom.Property(card, "transform")
		originalShadow := dom.Property(card, "box-shadow")

		env.Events.On(card, events.MouseEnter, func(context.Context, *events.Event) error {
			dom.AddClass(card, CardHoverClass)
			setAll(card,
				decl("transform", "translateY(-10px)"),
				decl("box-shadow", "0 8px 16px rgba(0, 0, 0, 0.2)"),
				decl("transition", "all 0.3s ease"),
			)
			return nil
		})
		env.Events.On(card, events.MouseLeave, func(context.Context, *events.Event) error {
			dom.RemoveClass(card, CardHoverClass)
			setAll(card,
				decl("transform", originalTransform),
				decl("box-shadow", originalShadow),
			)
			return nil
		})
	}

	for _, icon := range env.Doc.All(IconSelector) {
		card := dom.Closest(icon, theme.CardSelector)
		if card == nil {
			continue
		}
		env.Events.On(card, events.MouseEnter, func(context.Context, *events.Event) error {
			setAll(icon,
				decl("transform", "scale(1.2) rotate(5deg)"),
				decl("transition", "all 0.3s ease"),
			)
			return nil
		})
		env.Events.On(card, events.MouseLeave, func(context.Context, *events.Event) error {
			dom.RemoveProperty(icon, "transform")
			return nil
		})
	}
	return nil
}

// FontControl loads the stored font size and listens for arrow keys on the
// document.
func FontControl(ctx context.Context, env *Env) error {
	env.Session.Font = env.Font.Load(ctx, env.Doc)
	env.Events.OnDocument(events.KeyDown, func(ctx context.Context, ev *events.Event) error {
		next, handled := env.Font.HandleKey(ctx, env.Doc, env.Session.Font, ev.Key)
		if !handled {
			return nil
		}
		ev.PreventDefault()
		env.Session.Font = next
		return nil
	})
	return nil
}

// FormValidation takes over submission of every form.
func FormValidation(_ context.Context, env *Env) error {
	for _, f := range env.Forms.Attach(env.Doc) {
		env.Events.On(f, events.Submit, func(ctx context.Context, ev *events.Event) error {
			ev.PreventDefault()
			_, err := env.Forms.Submit(ctx, env.Doc, f)
			return err
		})
	}
	return nil
}

// ThemeLoad renders the stored theme preference.
func ThemeLoad(ctx context.Context, env *Env) error {
	env.Session.Theme = env.Theme.LoadOnStartup(ctx, env.Doc)
	return nil
}
