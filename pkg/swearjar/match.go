package swearjar

import "strings"

// Match describes why a text was found profane.
type Match struct {
	// Token is the normalized token, or the matched text for a phrase.
	Token string
	// Entry is the blacklist entry that matched.
	Entry string
	// Phrase is set when Entry is a phrase entry.
	Phrase bool
}

// IsProfane reports the first profane token of text. For a phrase match the
// matched substring is returned.
func (f *Filter) IsProfane(text string) (string, bool) {
	m, ok := f.Check(text)
	return m.Token, ok
}

// Check looks for profanity in text. Phrase entries are searched first,
// latest added first, in the raw text; phrase comparison ignores case. Then
// each whitespace-separated token is normalized and compared with the token
// entries; the first profane token in input order wins.
func (f *Filter) Check(text string) (Match, bool) {
	if text == "" {
		return Match{}, false
	}

	if f.specials {
		for i := len(f.phrases) - 1; i >= 0; i-- {
			p := f.phrases[i]
			if found := p.pattern.FindString(text); found != "" {
				return Match{Token: found, Entry: p.raw, Phrase: true}, true
			}
		}
	}

	for _, w := range strings.Fields(text) {
		n := f.norm.normalize(w)
		if entry, ok := f.matchToken(n); ok {
			return Match{Token: n, Entry: entry}, true
		}
	}

	return Match{}, false
}

// matchToken tests a normalized token: exact membership first, then the
// entry patterns in blacklist order.
func (f *Filter) matchToken(n string) (string, bool) {
	if n == "" {
		return "", false
	}
	if entry, ok := f.index[n]; ok {
		return entry, true
	}
	for _, t := range f.tokens {
		if t.pattern.MatchString(n) {
			return t.raw, true
		}
	}
	return "", false
}
