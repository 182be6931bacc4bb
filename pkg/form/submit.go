package form

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/goliatone/go-sitekit/pkg/dom"
	"github.com/goliatone/go-sitekit/pkg/render/markup"
	"github.com/goliatone/go-sitekit/pkg/validation"
)

const errorFieldStyle = "2px solid red"

var errorMessageStyle = []dom.Declaration{
	{Property: "color", Value: "red"},
	{Property: "font-size", Value: "14px"},
	{Property: "margin-top", Value: "5px"},
	{Property: "margin-bottom", Value: "10px"},
	{Property: "font-weight", Value: "bold"},
	{Property: "display", Value: "block"},
}

var successMessageStyle = []dom.Declaration{
	{Property: "color", Value: "green"},
	{Property: "background-color", Value: "#d4edda"},
	{Property: "padding", Value: "15px"},
	{Property: "margin-top", Value: "20px"},
	{Property: "border-radius", Value: "5px"},
	{Property: "border", Value: "1px solid green"},
	{Property: "font-weight", Value: "bold"},
}

// Attach turns off native validation on every form of doc and returns the
// forms.
func (v *Validator) Attach(doc *dom.Document) []*html.Node {
	forms := doc.All("form")
	for _, form := range forms {
		dom.SetAttr(form, "novalidate", "novalidate")
	}
	return forms
}

// Submit runs one submission attempt on form. Previous annotations of this
// form are cleared first, so repeated failing submissions never accumulate
// markers. A valid submission resets the form and appends a notice that is
// removed after NoticeTimeout. Errors come only from fragment rendering.
func (v *Validator) Submit(ctx context.Context, doc *dom.Document, form *html.Node) (Outcome, error) {
	if doc == nil || form == nil {
		return Outcome{}, nil
	}

	Clear(form)

	values := make(map[string]string, len(v.rules))
	fields := make(map[string]*html.Node, len(v.rules))
	for _, rule := range v.rules {
		field := dom.FirstWithin(form, rule.Selector)
		if field == nil {
			continue
		}
		values[rule.Field] = Value(field)
		fields[rule.Field] = field
	}

	result := validation.Validate(v.rules, values)
	outcome := Outcome{Result: result}
	v.recorder.RecordSubmission(result.Valid, len(result.Failures))

	if !result.Valid {
		for _, failure := range result.Failures {
			annotation, err := v.annotate(fields[failure.Field], failure)
			if err != nil {
				return outcome, err
			}
			outcome.Annotations = append(outcome.Annotations, annotation)
		}
		v.logger.DebugContext(ctx, "form rejected", "failures", len(result.Failures))
		return outcome, nil
	}

	v.logger.InfoContext(ctx, "form data", slog.Any("values", result.Values))
	Reset(form)

	notice, err := v.notify(doc, form)
	if err != nil {
		return outcome, err
	}
	outcome.Notice = notice
	return outcome, nil
}

// Clear removes the error messages and field markers inside form only.
func Clear(form *html.Node) {
	for _, message := range dom.Within(form, "."+ErrorMessageClass) {
		dom.Remove(message)
	}
	for _, field := range dom.Within(form, "."+ErrorFieldClass) {
		dom.RemoveClass(field, ErrorFieldClass)
		dom.RemoveProperty(field, "border")
		dom.RemoveProperty(field, "outline")
	}
}

func (v *Validator) annotate(field *html.Node, failure validation.Failure) (Annotation, error) {
	dom.AddClass(field, ErrorFieldClass)
	dom.SetProperty(field, "border", errorFieldStyle, true)
	dom.SetProperty(field, "outline", errorFieldStyle, true)

	node, err := v.markup.Element(markup.ErrorMessage, map[string]any{"message": failure.Message})
	if err != nil {
		return Annotation{}, fmt.Errorf("form: annotate %s: %w", failure.Field, err)
	}
	applyStyle(node, errorMessageStyle)
	dom.InsertAfterSkippingBreaks(field, node)

	return Annotation{
		Field:   failure.Field,
		Message: failure.Message,
		Target:  field,
		Node:    node,
	}, nil
}

func (v *Validator) notify(doc *dom.Document, form *html.Node) (*Notice, error) {
	id := v.nextID()
	node, err := v.markup.Element(markup.SuccessMessage, map[string]any{
		"id":      id,
		"message": SuccessText,
	})
	if err != nil {
		return nil, fmt.Errorf("form: success notice: %w", err)
	}
	applyStyle(node, successMessageStyle)
	form.AppendChild(node)

	v.scheduler.AfterFunc(NoticeTimeout, func() {
		// the notice may already be gone together with its form
		if current := doc.ByID(id); current != nil {
			dom.Remove(current)
		}
	})

	return &Notice{
		ID:      id,
		Message: SuccessText,
		Node:    node,
		Expires: NoticeTimeout,
	}, nil
}

func applyStyle(n *html.Node, declarations []dom.Declaration) {
	style := dom.StyleOf(n)
	for _, decl := range declarations {
		style.Set(decl.Property, decl.Value, decl.Important)
	}
	dom.WriteStyle(n, style)
}
