package domain

import (
	"strings"
	"unicode"
)

// TitleKey lower-cases title and drops every whitespace rune, so
// "The Princess Bride" and "ThePrincessBride" share the key "theprincessbride".
func TitleKey(title string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, title))
}
