package swearjar

import "swearjar/pkg/wordlist"

const (
	// DefaultNormalizeFilter matches the characters stripped from a token
	// before it is compared with the blacklist: everything except letters,
	// digits, '$' and '@'.
	DefaultNormalizeFilter = `[^\p{L}\p{M}\p{N}$@]`

	// DefaultReplaceFilter matches the characters of a profane word that are
	// overwritten with the placeholder.
	DefaultReplaceFilter = `[\p{L}\p{M}\p{N}_]`

	DefaultPlaceholder = '*'
)

// Options configures a Filter.
type Options struct {
	WordList     wordlist.List
	ExtraWords   []string
	ExtraPhrases []string

	Placeholder     rune
	NormalizeFilter string
	ReplaceFilter   string

	// BoundaryMode requires a pattern match inside a token to be flanked by
	// non-word characters or the token edges.
	BoundaryMode bool
	// Specials enables substring matching of phrase entries.
	Specials bool
	// FoldMarks strips combining marks during normalization, e.g. "é" -> "e".
	FoldMarks bool
}

// DefaultOptions returns options backed by the embedded word list.
func DefaultOptions() Options {
	return Options{
		WordList:        wordlist.Default(),
		Placeholder:     DefaultPlaceholder,
		NormalizeFilter: DefaultNormalizeFilter,
		ReplaceFilter:   DefaultReplaceFilter,
		BoundaryMode:    true,
		Specials:        true,
	}
}

// Option is a function that can be used to set options for a Filter.
type Option func(*Options)

// WithWordList replaces the default word list.
func WithWordList(l wordlist.List) Option {
	return func(o *Options) {
		o.WordList = l
	}
}

// WithExtraWords adds words on top of the word list.
func WithExtraWords(words ...string) Option {
	return func(o *Options) {
		o.ExtraWords = append(o.ExtraWords, words...)
	}
}

// WithExtraPhrases adds phrase entries on top of the word list specials.
func WithExtraPhrases(phrases ...string) Option {
	return func(o *Options) {
		o.ExtraPhrases = append(o.ExtraPhrases, phrases...)
	}
}

// WithPlaceholder sets the character written over profane text.
func WithPlaceholder(r rune) Option {
	return func(o *Options) {
		o.Placeholder = r
	}
}

// WithNormalizeFilter sets the regular expression of characters removed
// during normalization.
func WithNormalizeFilter(expr string) Option {
	return func(o *Options) {
		o.NormalizeFilter = expr
	}
}

// WithReplaceFilter sets the regular expression of characters replaced by
// the placeholder inside a profane word.
func WithReplaceFilter(expr string) Option {
	return func(o *Options) {
		o.ReplaceFilter = expr
	}
}

func WithBoundaryMode(enabled bool) Option {
	return func(o *Options) {
		o.BoundaryMode = enabled
	}
}

func WithSpecials(enabled bool) Option {
	return func(o *Options) {
		o.Specials = enabled
	}
}

func WithFoldMarks(enabled bool) Option {
	return func(o *Options) {
		o.FoldMarks = enabled
	}
}
