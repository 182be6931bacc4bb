package locale

import (
	"testing"
	"time"
)

func TestLongDate(t *testing.T) {
	day := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		tag  string
		want string
	}{
		{tag: "uk-UA", want: "19 жовтня 2026 р."},
		{tag: "uk", want: "19 жовтня 2026 р."},
		{tag: "en-US", want: "October 19, 2026"},
		{tag: "", want: "19 жовтня 2026 р."},
		{tag: "not a tag!", want: "19 жовтня 2026 р."},
	}
	for _, tc := range cases {
		if got := LongDate(day, Parse(tc.tag)); got != tc.want {
			t.Fatalf("LongDate(%q) = %q, want %q", tc.tag, got, tc.want)
		}
	}
}

func TestLongDate_MonthNames(t *testing.T) {
	got := LongDate(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), Default)
	if got != "1 січня 2025 р." {
		t.Fatalf("unexpected %q", got)
	}
	got = LongDate(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), Default)
	if got != "31 грудня 2025 р." {
		t.Fatalf("unexpected %q", got)
	}
}

func TestTranslator(t *testing.T) {
	cases := map[string]string{
		"uk-UA": "uk_UA",
		"en-GB": "en",
		"de-DE": "uk_UA",
	}
	for raw, want := range cases {
		if got := Translator(Parse(raw)).Locale(); got != want {
			t.Fatalf("Translator(%q).Locale() = %q, want %q", raw, got, want)
		}
	}
}
