// Package locale formats dates for humans in the languages the confirmation
// email supports. Everything here is pure: no I/O, no clock.
package locale

import (
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Locale is a supported display language.
type Locale struct {
	tag      language.Tag
	monday   monday.Locale
	longDate string // Go layout equivalent of the dayjs "LL" format
	lower    bool   // month names are not capitalized in running text
}

// The first entry is the fallback for unknown or malformed tags.
var supported = []Locale{
	{tag: language.BrazilianPortuguese, monday: monday.LocalePtBR, longDate: "2 de January de 2006", lower: true},
	{tag: language.AmericanEnglish, monday: monday.LocaleEnUS, longDate: "January 2, 2006"},
	{tag: language.EuropeanSpanish, monday: monday.LocaleEsES, longDate: "2 de January de 2006", lower: true},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// Default is the locale used when nothing better matches (pt-BR).
func Default() Locale {
	return supported[0]
}

// Parse returns the supported locale closest to the BCP 47 tag s, so "pt" and
// "pt-PT" resolve to pt-BR and "en-GB" to en-US. Unknown or malformed tags
// resolve to Default.
func Parse(s string) Locale {
	tag, err := language.Parse(s)
	if err != nil {
		return Default()
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default()
	}
	return supported[idx]
}

// String returns the canonical BCP 47 tag, e.g. "pt-BR".
func (l Locale) String() string {
	return l.tag.String()
}

// FormatLongDate renders t as a long-form localized date, e.g.
// "1 de janeiro de 2031" for pt-BR or "January 1, 2031" for en-US.
// The date is taken in t's own location.
func (l Locale) FormatLongDate(t time.Time) string {
	s := monday.Format(t, l.longDate, l.monday)
	if l.lower {
		s = cases.Lower(l.tag).String(s)
	}
	return s
}

// FormatLongDate is shorthand for Parse(tag).FormatLongDate(t).
func FormatLongDate(t time.Time, tag string) string {
	return Parse(tag).FormatLongDate(t)
}
