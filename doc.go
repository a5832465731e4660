// Package toregex turns a pattern, or a list of patterns, into a compiled
// regular expression with configurable matching semantics.
//
// By default the pattern must match the whole input:
//
//	re, err := toregex.MakeRe("abc")
//	re.MatchString("abc")   // true
//	re.MatchString("xabcx") // false
//
// [WithContains] relaxes the anchors, [WithNegate] inverts the match,
// [WithNocase] and [WithFlags] control the compile flags. Results are
// memoized in a [Cache] keyed by the pattern and its options; the
// package-level functions share a default cache.
//
// Invalid patterns do not fail by default. They fall back to matching the
// pattern literally, or to a regex that never matches (see [Outcome]).
// [WithStrictErrors] and [WithSafe] make the failure visible as a
// [*CompileError].
package toregex
