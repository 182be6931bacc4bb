package form

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/validation"
)

// Control kinds.
const (
	KindInput    = "input"
	KindTextArea = "textarea"
	KindSelect   = "select"
)

// Choice is one option of a select control.
type Choice struct {
	Value string
	Label string
}

// Field describes a validated control for interactive filling.
type Field struct {
	Key      string
	Selector string
	Kind     string
	Label    string
	Value    string
	Choices  []Choice
}

// Describe lists the controls of form that rules validate, in rule order.
func Describe(form *html.Node, rules []validation.Rule) []Field {
	var fields []Field
	for _, rule := range rules {
		node := dom.FirstWithin(form, rule.Selector)
		if node == nil {
			continue
		}
		field := Field{
			Key:      rule.Field,
			Selector: rule.Selector,
			Kind:     KindInput,
			Label:    rule.Field,
			Value:    Value(node),
		}
		id, hasID := dom.Attr(node, "id")
		if hasID && id != "" {
			field.Selector = "#" + id
			if label := dom.FirstWithin(form, `label[for="`+id+`"]`); label != nil {
				if text := strings.TrimSpace(dom.Text(label)); text != "" {
					field.Label = text
				}
			}
		}
		switch {
		case dom.IsTag(node, "textarea"):
			field.Kind = KindTextArea
		case dom.IsTag(node, "select"):
			field.Kind = KindSelect
			for _, option := range dom.Within(node, "option") {
				field.Choices = append(field.Choices, Choice{
					Value: optionValue(option),
					Label: strings.TrimSpace(dom.Text(option)),
				})
			}
		}
		fields = append(fields, field)
	}
	return fields
}
