package desk

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NameValidator reports whether a raw student name is acceptable.
type NameValidator func(name string) bool

const minNameLen = 2

// ValidName accepts letters (any script) and spaces, with at least two
// characters after trimming. Input is NFC-normalized first so decomposed
// accents compose into letters.
func ValidName(name string) bool {
	name = normalizeName(name)
	if utf8.RuneCountInString(name) < minNameLen {
		return false
	}
	for _, r := range name {
		if r != ' ' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func normalizeName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}
