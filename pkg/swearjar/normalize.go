package swearjar

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type normalizer struct {
	strip     *regexp.Regexp
	foldMarks bool
}

// normalize lowercases s and removes every character matched by the strip
// expression.
func (n normalizer) normalize(s string) string {
	s = strings.ToLower(s)
	if n.foldMarks {
		s = foldMarks(s)
	}
	return n.strip.ReplaceAllString(s, "")
}

// foldMarks decomposes s and drops non-spacing marks, i.e. "Ĥéĺĺó" -> "Hello".
func foldMarks(s string) string {
	// transform.Chain keeps state, so it is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
