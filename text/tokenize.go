package text

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into word tokens, preserving order.
//
// A rune belongs to a token when it is a letter, a decimal digit, a
// connector punctuation (such as '_'), a non-spacing mark, or falls in the
// Latin-1 accented range 'á'..'ú' (plus 'ü' and 'ñ'). Every other rune is a
// separator; empty fragments are dropped.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	lower := strings.ToLower(s)
	return strings.FieldsFunc(lower, func(r rune) bool { return !isWordRune(r) })
}

func isWordRune(r rune) bool {
	switch {
	case r == '_':
		return true
	case r < 0x80:
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	case r >= 'á' && r <= 'ú', r == 'ü', r == 'ñ':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Pc, r)
}
