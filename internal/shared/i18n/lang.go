// Package i18n resolves client-facing messages in the languages the admin UI ships.
package i18n

import (
	"golang.org/x/text/language"
)

// Lang represents a supported language
type Lang string

const (
	EN Lang = "en"
	FR Lang = "fr"
)

// Default is used when negotiation finds nothing better.
const Default = EN

var (
	supported = []language.Tag{language.English, language.French}
	matcher   = language.NewMatcher(supported)
)

// Negotiate picks the best supported language for an Accept-Language header value.
func Negotiate(acceptLanguage string) Lang {
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	base, _ := supported[idx].Base()
	return Lang(base.String())
}

// ParseLang parses a stored language string, defaulting to English.
func ParseLang(s string) Lang {
	if Lang(s) == FR {
		return FR
	}
	return EN
}
