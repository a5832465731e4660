// Package negate rewrites a pattern into one that matches every string the
// original does not.
package negate

// DefaultEndChar is the quantifier applied to the negated character loop.
const DefaultEndChar = "+"

// Options controls the shape of the negated pattern.
type Options struct {
	// Loose negates containment: the result rejects any string containing
	// a match. The default negates the whole string only.
	Loose bool
	// NoOpen and NoClose drop the leading ^ and trailing $.
	NoOpen  bool
	NoClose bool
	// EndChar replaces DefaultEndChar when set, e.g. "*" to accept the
	// empty string.
	EndChar string
}

// Create returns the negated form of pattern.
//
// The result needs lookahead support, so it is always executed by the
// backtracking engine.
func Create(pattern string, opts Options) string {
	endChar := opts.EndChar
	if endChar == "" {
		endChar = DefaultEndChar
	}

	var body string
	if opts.Loose {
		body = "(?:(?!(?:" + pattern + ")).)" + endChar
	} else {
		body = "(?:(?!^(?:" + pattern + ")$).)" + endChar
	}

	if !opts.NoOpen {
		body = "^" + body
	}
	if !opts.NoClose {
		body += "$"
	}

	return body
}
