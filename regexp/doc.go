// Package regexp compiles the regular expressions assembled by toregex.
//
// Patterns are compiled with coregex (an accelerated RE2-compatible engine)
// whenever possible. Patterns that need features RE2 cannot execute, such as
// the lookaheads produced for negated patterns or backreferences, fall back to
// [regexp2].
//
// Flags use the JavaScript alphabet (see [ParseFlags]) so that a pattern and
// its flag string can be carried around as a pair.
package regexp
