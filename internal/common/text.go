package common

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest. Any non-letter ("_", "-", digits) starts a new word.
func TitleCase(s string) string {
	caser := cases.Title(language.Und)
	notLetter := func(r rune) bool { return !unicode.IsLetter(r) }

	var b strings.Builder
	b.Grow(len(s))
	for s != "" {
		end := strings.IndexFunc(s, notLetter)
		if end < 0 {
			end = len(s)
		}
		b.WriteString(caser.String(s[:end]))
		s = s[end:]

		end = strings.IndexFunc(s, unicode.IsLetter)
		if end < 0 {
			end = len(s)
		}
		b.WriteString(s[:end])
		s = s[end:]
	}
	return b.String()
}
