// Package locale formats the footer date. Only the site locale (uk-UA) and
// an English fallback are known.
package locale

import (
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/uk_UA"
	"golang.org/x/text/language"
)

// Default is the site locale.
var Default = language.MustParse("uk-UA")

var supported = []language.Tag{
	language.Ukrainian,
	language.English,
}

// translators is indexed like supported.
var translators = []locales.Translator{
	uk_UA.New(),
	en.New(),
}

var matcher = language.NewMatcher(supported)

// Parse resolves a BCP 47 tag, falling back to Default.
func Parse(raw string) language.Tag {
	if raw == "" {
		return Default
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return Default
	}
	return tag
}

// Translator returns the CLDR translator closest to tag. Unmatched tags get
// the Ukrainian one.
func Translator(tag language.Tag) locales.Translator {
	_, index, _ := matcher.Match(tag)
	return translators[index]
}

// LongDate formats t with a long month name: "19 жовтня 2026 р." for
// Ukrainian, "October 19, 2026" for English.
func LongDate(t time.Time, tag language.Tag) string {
	return Translator(tag).FmtDateLong(t)
}
