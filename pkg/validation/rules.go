// Package validation holds the field rules of the site forms and evaluates
// them without touching a document.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field keys of the contact form.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldMessage     = "message"
	FieldContactType = "contactType"
	FieldContactInfo = "contactInfo"
)

// EmailPattern accepts local@domain.tld: no whitespace, exactly one @ and at
// least one dot after it. Whitespace is the browser set: ASCII space and
// controls including \v, every Unicode separator and the byte order mark.
var EmailPattern = regexp.MustCompile(`^[^\s\v\x{FEFF}\p{Z}@]+@[^\s\v\x{FEFF}\p{Z}@]+\.[^\s\v\x{FEFF}\p{Z}@]+$`)

// IsSpace reports whether r is whitespace for trimming and email checks:
// tab, line feed, vertical tab, form feed, carriage return, U+FEFF and the
// Unicode space, line and paragraph separators.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// Trim strips leading and trailing IsSpace runes.
func Trim(raw string) string {
	return strings.TrimFunc(raw, IsSpace)
}

// Predicate reports whether a normalised value passes.
type Predicate func(value string) bool

// Rule binds a form field to a predicate and the message shown when the
// predicate fails.
type Rule struct {
	Field    string
	Selector string
	Trim     bool
	Check    Predicate
	Message  string
}

// Normalize prepares a raw field value for checking and collection.
func (r Rule) Normalize(raw string) string {
	if r.Trim {
		return Trim(raw)
	}
	return raw
}

// MinLength passes values with at least n characters.
func MinLength(n int) Predicate {
	return func(value string) bool {
		return utf8.RuneCountInString(value) >= n
	}
}

// NonEmpty passes any value other than "".
func NonEmpty() Predicate {
	return func(value string) bool {
		return value != ""
	}
}

// Matches passes values matching re.
func Matches(re *regexp.Regexp) Predicate {
	return func(value string) bool {
		return re.MatchString(value)
	}
}

// ContactRules returns the rule table of the site contact form. Messages are
// in Ukrainian, the only locale of the site.
func ContactRules() []Rule {
	return []Rule{
		{
			Field:    FieldName,
			Selector: `#name, input[name="name"]`,
			Trim:     true,
			Check:    MinLength(3),
			Message:  "Ім'я повинно містити принаймні 3 символи",
		},
		{
			Field:    FieldEmail,
			Selector: `#email, input[type="email"]`,
			Trim:     true,
			Check:    Matches(EmailPattern),
			Message:  "Email повинен містити @ та домен (наприклад, user@example.com)",
		},
		{
			Field:    FieldMessage,
			Selector: `#message, textarea[name="message"]`,
			Trim:     true,
			Check:    MinLength(10),
			Message:  "Повідомлення повинно містити принаймні 10 символів",
		},
		{
			Field:    FieldContactType,
			Selector: `#contact-type`,
			Check:    NonEmpty(),
			Message:  "Оберіть спосіб зв'язку",
		},
		{
			Field:    FieldContactInfo,
			Selector: `#contact-info`,
			Trim:     true,
			Check:    MinLength(3),
			Message:  "Введіть коректну контактну інформацію",
		},
	}
}
