package session

import (
	"errors"
	"unicode"
)

var (
	errUnterminatedQuote = errors.New("unterminated quote")
	errTrailingEscape    = errors.New("trailing backslash")
)

// splitWords splits a command line into argv.
// It supports single quotes, double quotes, and backslash escaping (outside single quotes).
// An unquoted '#' at the start of a word starts a comment.
func splitWords(s string) ([]string, error) {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false
	// quoted tracks an explicitly empty word such as "".
	quoted := false

	flush := func() {
		if len(cur) == 0 && !quoted {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		quoted = false
	}

	for _, r := range s {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}
		switch {
		case r == '\\' && !inSingle:
			escaped = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			quoted = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			quoted = true
		case inSingle || inDouble:
			cur = append(cur, r)
		case unicode.IsSpace(r):
			flush()
		case r == '#' && len(cur) == 0 && !quoted:
			return out, nil
		default:
			cur = append(cur, r)
		}
	}
	if escaped {
		return nil, errTrailingEscape
	}
	if inSingle || inDouble {
		return nil, errUnterminatedQuote
	}
	flush()
	return out, nil
}
