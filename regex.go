package toregex

import "go.dw1.io/x/toregex/regexp"

// Outcome records which compilation path produced a Regex.
type Outcome uint8

const (
	// OutcomeCompiled is the assembled pattern, compiled as requested.
	OutcomeCompiled Outcome = iota
	// OutcomeLiteral is the fallback that matches the original pattern
	// text literally.
	OutcomeLiteral
	// OutcomeNoMatch is the last-resort fallback that matches nothing.
	OutcomeNoMatch
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompiled:
		return "compiled"
	case OutcomeLiteral:
		return "literal"
	case OutcomeNoMatch:
		return "no-match"
	default:
		return "unknown"
	}
}

// Regex is a compiled regular expression together with how it was derived.
// The embedded *regexp.Regexp provides the match operations.
//
// A Regex returned from a cache is shared by every caller with the same key
// and must not be modified.
type Regex struct {
	*regexp.Regexp

	// Cached reports whether the Regex is stored in a cache.
	Cached bool
	// Pattern is the pattern inside the anchors, after negation.
	Pattern string
	// Options are the resolved options.
	Options *Options
	// Key is the cache key derived from the caller's pattern and options.
	Key string
	// Outcome tells a regular compilation apart from the fallbacks.
	Outcome Outcome
}
