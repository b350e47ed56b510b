package swearjar

import (
	"strings"
	"unicode/utf8"
)

// Clean returns text with every profane phrase and word overwritten by the
// placeholder. Each replaced character becomes exactly one placeholder, and
// everything else is copied unchanged.
func (f *Filter) Clean(text string) string {
	if text == "" {
		return ""
	}

	if f.specials {
		for i := len(f.phrases) - 1; i >= 0; i-- {
			text = f.phrases[i].pattern.ReplaceAllStringFunc(text, f.mask)
		}
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, seg := range segments(text) {
		if seg.word {
			if _, ok := f.matchToken(f.norm.normalize(seg.text)); ok {
				sb.WriteString(f.redact(seg.text))
				continue
			}
		}
		sb.WriteString(seg.text)
	}

	return sb.String()
}

// redact replaces the characters of word matched by the replace filter.
func (f *Filter) redact(word string) string {
	return f.replace.ReplaceAllStringFunc(word, f.mask)
}

func (f *Filter) mask(s string) string {
	return strings.Repeat(string(f.placeholder), utf8.RuneCountInString(s))
}
