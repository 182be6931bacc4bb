package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-sitekit/pkg/form"
	"github.com/goliatone/go-sitekit/pkg/validation"
)

// Answer is the value typed for one field.
type Answer struct {
	Selector string
	Value    string
}

// Fill asks for every field in order. Typed answers are checked against the
// rule with the field's key and asked again until they pass; the rule
// message doubles as the prompt help. Answers are returned raw so the page
// normalises them on submit.
func Fill(ctx context.Context, driver Driver, fields []form.Field, rules []validation.Rule) ([]Answer, error) {
	byField := make(map[string]validation.Rule, len(rules))
	for _, rule := range rules {
		byField[rule.Field] = rule
	}
	answers := make([]Answer, 0, len(fields))
	for _, field := range fields {
		rule, ok := byField[field.Key]
		var check *validation.Rule
		if ok {
			check = &rule
		}
		value, err := ask(ctx, driver, field, check)
		if err != nil {
			return answers, fmt.Errorf("prompt: %s: %w", field.Key, err)
		}
		answers = append(answers, Answer{Selector: field.Selector, Value: value})
	}
	return answers, nil
}

// Validator rejects values the rule's check fails, with the rule message.
func Validator(rule validation.Rule) func(string) error {
	return func(raw string) error {
		if rule.Check == nil || rule.Check(rule.Normalize(raw)) {
			return nil
		}
		return errors.New(rule.Message)
	}
}

func ask(ctx context.Context, driver Driver, field form.Field, rule *validation.Rule) (string, error) {
	var (
		help     string
		validate func(string) error
	)
	if rule != nil {
		help = rule.Message
		validate = Validator(*rule)
	}
	switch field.Kind {
	case form.KindTextArea:
		return driver.TextArea(ctx, TextAreaConfig{
			Message:   field.Label,
			Default:   field.Value,
			Help:      help,
			Validator: validate,
		})
	case form.KindSelect:
		labels := make([]string, len(field.Choices))
		current := 0
		for i, choice := range field.Choices {
			labels[i] = choice.Label
			if choice.Value == field.Value {
				current = i
			}
		}
		for {
			idx, err := driver.Select(ctx, SelectConfig{
				Message:      field.Label,
				Options:      labels,
				DefaultIndex: current,
				Help:         help,
			})
			if err != nil {
				return "", err
			}
			if idx < 0 || idx >= len(field.Choices) {
				return "", ErrUnknownChoice
			}
			value := field.Choices[idx].Value
			if validate == nil {
				return value, nil
			}
			verr := validate(value)
			if verr == nil {
				return value, nil
			}
			// survey cannot validate a select, so say why and ask again.
			if err := driver.Info(ctx, verr.Error()); err != nil {
				return "", err
			}
			current = idx
		}
	default:
		return driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Default:   field.Value,
			Help:      help,
			Validator: validate,
		})
	}
}
