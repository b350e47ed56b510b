// Package swearjar detects and redacts profanity.
//
// A Filter keeps two blacklists. Token entries are single words compared
// against whitespace-separated tokens of the input after normalization.
// Phrase entries span several words or carry punctuation, so they are looked
// up as case-insensitive substrings of the raw input before tokenization.
//
// A Filter is not safe for concurrent use when the blacklist is mutated:
// callers must serialize SetBlacklist, SetPhrases, AddWords and AddPhrases
// against IsProfane, Check and Clean.
//
// An entry is held in one list only. A word that is also given as a phrase,
// ignoring case, is kept as a phrase.
package swearjar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrInvalidBlacklistEntry = errors.New("invalid blacklist entry")
)

type token struct {
	raw     string
	norm    string
	pattern *regexp.Regexp
}

type phrase struct {
	raw     string
	pattern *regexp.Regexp
}

// Filter holds the blacklists and the matching rules.
type Filter struct {
	placeholder rune
	boundary    bool
	specials    bool

	norm    normalizer
	replace *regexp.Regexp

	tokens  []token
	index   map[string]string // normalized entry -> first raw entry
	phrases []phrase
}

// New builds a Filter from DefaultOptions modified by opts.
func New(opts ...Option) (*Filter, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.Placeholder == 0 || o.Placeholder == utf8.RuneError {
		return nil, fmt.Errorf("%w: placeholder %q", ErrInvalidArgument, o.Placeholder)
	}
	strip, err := regexp.Compile(o.NormalizeFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: normalize filter %q: %v", ErrInvalidArgument, o.NormalizeFilter, err)
	}
	replace, err := regexp.Compile(o.ReplaceFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: replace filter %q: %v", ErrInvalidArgument, o.ReplaceFilter, err)
	}

	f := &Filter{
		placeholder: o.Placeholder,
		boundary:    o.BoundaryMode,
		specials:    o.Specials,
		norm:        normalizer{strip: strip, foldMarks: o.FoldMarks},
		replace:     replace,
		index:       make(map[string]string),
	}

	words := make([]string, 0, len(o.WordList.Words)+len(o.ExtraWords))
	words = append(words, o.WordList.Words...)
	words = append(words, o.ExtraWords...)
	specials := make([]string, 0, len(o.WordList.Specials)+len(o.ExtraPhrases))
	specials = append(specials, o.WordList.Specials...)
	specials = append(specials, o.ExtraPhrases...)

	tokens, phrases, err := partition(words, specials)
	if err != nil {
		return nil, err
	}
	f.appendPhrases(phrases)
	f.appendTokens(tokens)
	f.reorder()

	return f, nil
}

// Blacklist returns a copy of the token entries in matching order.
func (f *Filter) Blacklist() []string {
	out := make([]string, len(f.tokens))
	for i, t := range f.tokens {
		out[i] = t.raw
	}
	return out
}

// Phrases returns a copy of the phrase entries in insertion order.
func (f *Filter) Phrases() []string {
	out := make([]string, len(f.phrases))
	for i, p := range f.phrases {
		out[i] = p.raw
	}
	return out
}

// SetBlacklist replaces the token entries with entries. Entries spanning
// several words are added to the phrase list; the phrases already held are
// kept, use SetPhrases to replace them. Entries already held as phrases are
// not added as tokens.
// A nil slice is rejected with ErrInvalidArgument and leaves the filter
// unchanged; an empty slice clears the token entries.
func (f *Filter) SetBlacklist(entries []string) error {
	if entries == nil {
		return fmt.Errorf("%w: nil blacklist", ErrInvalidArgument)
	}

	tokens, phrases, err := partition(entries, nil)
	if err != nil {
		return err
	}

	f.tokens = nil
	f.index = make(map[string]string)
	f.appendPhrases(phrases)
	f.appendTokens(tokens)
	f.reorder()

	return nil
}

// AddWords appends words to the token entries. A single argument is split on
// commas, so AddWords("foo,bar") adds two words.
//
// Added words always become token entries, even when they contain spaces or
// punctuation; use AddPhrases for those.
func (f *Filter) AddWords(words ...string) error {
	if len(words) == 1 {
		words = strings.Split(words[0], ",")
	}

	clean, err := sanitize(words)
	if err != nil {
		return err
	}
	f.appendTokens(clean)
	f.reorder()

	return nil
}

// AddPhrases appends entries that are matched as substrings of the raw input.
// A token entry equal to an added phrase, ignoring case, is removed from the
// token entries.
func (f *Filter) AddPhrases(phrases ...string) error {
	clean, err := sanitize(phrases)
	if err != nil {
		return err
	}
	f.appendPhrases(clean)
	f.reorder()

	return nil
}

// SetPhrases replaces the phrase entries. Token entries equal to one of the
// new phrases are removed. A nil slice is rejected with ErrInvalidArgument;
// an empty slice clears the phrase entries.
func (f *Filter) SetPhrases(phrases []string) error {
	if phrases == nil {
		return fmt.Errorf("%w: nil phrase list", ErrInvalidArgument)
	}

	clean, err := sanitize(phrases)
	if err != nil {
		return err
	}

	f.phrases = nil
	f.appendPhrases(clean)
	f.reorder()

	return nil
}

// partition splits candidate words into token and phrase entries. A word that
// splits into more than one lexical segment is a phrase. Specials are always
// phrases, and a word that is also a special is not a token.
func partition(words, specials []string) (tokens, phrases []string, err error) {
	words, err = sanitize(words)
	if err != nil {
		return nil, nil, err
	}
	specials, err = sanitize(specials)
	if err != nil {
		return nil, nil, err
	}

	special := make(map[string]struct{}, len(specials))
	for _, sp := range specials {
		special[entryKey(sp)] = struct{}{}
	}

	for _, w := range words {
		if _, ok := special[entryKey(w)]; ok {
			continue
		}
		if len(segments(w)) > 1 {
			phrases = append(phrases, w)
			continue
		}
		tokens = append(tokens, w)
	}
	phrases = append(phrases, specials...)

	return tokens, phrases, nil
}

// sanitize trims entries, drops blank ones and rejects malformed ones.
func sanitize(entries []string) ([]string, error) {
	out := make([]string, 0, len(entries))
	for i, e := range entries {
		if !utf8.ValidString(e) {
			return nil, fmt.Errorf("%w: entry %d is not valid UTF-8: %q", ErrInvalidBlacklistEntry, i, e)
		}
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// entryKey identifies an entry across the token and phrase lists.
func entryKey(raw string) string {
	return strings.ToLower(raw)
}

func (f *Filter) appendTokens(entries []string) {
	seen := make(map[string]struct{}, len(f.tokens))
	for _, t := range f.tokens {
		seen[t.raw] = struct{}{}
	}
	phrased := make(map[string]struct{}, len(f.phrases))
	for _, p := range f.phrases {
		phrased[entryKey(p.raw)] = struct{}{}
	}

	for _, raw := range entries {
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		if _, ok := phrased[entryKey(raw)]; ok {
			log.Debugf("[swearjar] entry %q is already a phrase, skipped", raw)
			continue
		}

		t, ok := f.compileToken(raw)
		if !ok {
			log.Debugf("[swearjar] entry %q is empty after normalization, skipped", raw)
			continue
		}
		f.tokens = append(f.tokens, t)
		if _, ok := f.index[t.norm]; !ok {
			f.index[t.norm] = t.raw
		}
	}
}

func (f *Filter) compileToken(raw string) (token, bool) {
	n := f.norm.normalize(raw)
	if n == "" {
		return token{}, false
	}

	expr := `(?i)` + regexp.QuoteMeta(n)
	if f.boundary {
		expr = `(?i)(?:^|[^` + wordClass + `])` + regexp.QuoteMeta(n) + `(?:[^` + wordClass + `]|$)`
	}

	return token{raw: raw, norm: n, pattern: regexp.MustCompile(expr)}, true
}

func (f *Filter) appendPhrases(entries []string) {
	seen := make(map[string]struct{}, len(f.phrases))
	for _, p := range f.phrases {
		seen[p.raw] = struct{}{}
	}

	for _, raw := range entries {
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}

		f.phrases = append(f.phrases, phrase{
			raw:     raw,
			pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(raw)),
		})
	}

	f.dropPhrasedTokens()
}

// dropPhrasedTokens removes token entries also held as phrases and rebuilds
// the exact-match index from the remaining tokens.
func (f *Filter) dropPhrasedTokens() {
	phrased := make(map[string]struct{}, len(f.phrases))
	for _, p := range f.phrases {
		phrased[entryKey(p.raw)] = struct{}{}
	}

	kept := f.tokens[:0]
	for _, t := range f.tokens {
		if _, ok := phrased[entryKey(t.raw)]; ok {
			log.Debugf("[swearjar] entry %q is now a phrase, removed from tokens", t.raw)
			continue
		}
		kept = append(kept, t)
	}
	f.tokens = kept

	f.index = make(map[string]string, len(f.tokens))
	for _, t := range f.tokens {
		if _, ok := f.index[t.norm]; !ok {
			f.index[t.norm] = t.raw
		}
	}
}

// reorder moves token entries that do not fully redact themselves behind the
// ones that do, keeping the relative order inside both groups. A single
// stable pass is enough: the result does not depend on the entry order, so
// running it again is a no-op.
func (f *Filter) reorder() {
	settled := make([]token, 0, len(f.tokens))
	var residual []token
	for _, t := range f.tokens {
		if hasOtherThan(f.Clean(t.raw), f.placeholder) {
			log.Debugf("[swearjar] entry %q does not redact itself, moved to the end", t.raw)
			residual = append(residual, t)
			continue
		}
		settled = append(settled, t)
	}
	f.tokens = append(settled, residual...)
}
