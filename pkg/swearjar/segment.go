package swearjar

import (
	"strings"
	"unicode"
)

// wordClass is the character class treated as word characters when text is
// split on lexical boundaries and when boundary mode checks a match.
const wordClass = `\p{L}\p{M}\p{N}_`

type segment struct {
	text string
	word bool
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.In(r, unicode.L, unicode.M, unicode.N)
}

// segments splits s at every transition between word and non-word characters.
// Concatenating the texts of the result yields s.
func segments(s string) []segment {
	var out []segment

	start := 0
	inWord := false
	for i, r := range s {
		w := isWordRune(r)
		if i > start && w != inWord {
			out = append(out, segment{text: s[start:i], word: inWord})
			start = i
		}
		if i == start {
			inWord = w
		}
	}
	if start < len(s) {
		out = append(out, segment{text: s[start:], word: inWord})
	}

	return out
}

// hasOtherThan reports whether s holds a rune different from r.
func hasOtherThan(s string, r rune) bool {
	return strings.IndexFunc(s, func(c rune) bool { return c != r }) >= 0
}
