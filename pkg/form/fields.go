package form

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-sitekit/pkg/dom"
)

// Value reads the current value of a form control: the value attribute of
// inputs, the text of textareas and the selected option of selects.
func Value(field *html.Node) string {
	switch {
	case dom.IsTag(field, "input"):
		value, _ := dom.Attr(field, "value")
		return value
	case dom.IsTag(field, "textarea"):
		return dom.Text(field)
	case dom.IsTag(field, "select"):
		option := selectedOption(field)
		if option == nil {
			return ""
		}
		return optionValue(option)
	default:
		value, _ := dom.Attr(field, "value")
		return value
	}
}

// SetValue writes value into a form control the way typing or picking an
// option would.
func SetValue(field *html.Node, value string) {
	switch {
	case dom.IsTag(field, "textarea"):
		dom.SetText(field, value)
	case dom.IsTag(field, "select"):
		for _, option := range dom.Within(field, "option") {
			if optionValue(option) == value {
				dom.SetAttr(option, "selected", "selected")
				continue
			}
			dom.RemoveAttr(option, "selected")
		}
	default:
		dom.SetAttr(field, "value", value)
	}
}

// Reset empties every control inside form.
func Reset(form *html.Node) {
	for _, field := range dom.Within(form, "input, textarea, select") {
		switch {
		case dom.IsTag(field, "textarea"):
			dom.RemoveChildren(field)
		case dom.IsTag(field, "select"):
			for _, option := range dom.Within(field, "option") {
				dom.RemoveAttr(option, "selected")
			}
		default:
			switch inputType(field) {
			case "submit", "button", "reset", "hidden", "image":
			case "checkbox", "radio":
				dom.RemoveAttr(field, "checked")
			default:
				dom.RemoveAttr(field, "value")
			}
		}
	}
}

func inputType(n *html.Node) string {
	typ, _ := dom.Attr(n, "type")
	return strings.ToLower(strings.TrimSpace(typ))
}

// selectedOption is the last option marked selected, else the first
// option, matching single-select browser behaviour.
func selectedOption(sel *html.Node) *html.Node {
	options := dom.Within(sel, "option")
	if len(options) == 0 {
		return nil
	}
	var chosen *html.Node
	for _, option := range options {
		if _, ok := dom.Attr(option, "selected"); ok {
			chosen = option
		}
	}
	if chosen == nil {
		chosen = options[0]
	}
	return chosen
}

func optionValue(option *html.Node) string {
	if value, ok := dom.Attr(option, "value"); ok {
		return value
	}
	return strings.TrimSpace(dom.Text(option))
}
