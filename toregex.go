package toregex

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.dw1.io/x/toregex/internal/negate"
	"go.dw1.io/x/toregex/internal/safety"
	"go.dw1.io/x/toregex/regexp"
)

// MaxLength is the longest pattern, in UTF-16 code units, that MakeRe
// accepts. Characters outside the Basic Multilingual Plane count twice.
const MaxLength = 1024 * 64

// noMatch never matches: nothing precedes the start of the input.
const noMatch = `.^`

var defaultCache = NewCache()

// Default returns the cache used by the package-level functions.
func Default() *Cache {
	return defaultCache
}

// ToRegex calls [Cache.ToRegex] on the default cache.
func ToRegex(pattern any, opts ...Option) (*Regex, error) {
	return defaultCache.ToRegex(pattern, opts...)
}

// MakeRe calls [Cache.MakeRe] on the default cache.
func MakeRe(pattern string, opts ...Option) (*Regex, error) {
	return defaultCache.MakeRe(pattern, opts...)
}

// MustCompile is like ToRegex but panics on error.
func MustCompile(pattern any, opts ...Option) *Regex {
	re, err := ToRegex(pattern, opts...)
	if err != nil {
		panic(err)
	}

	return re
}

// ToRegex converts pattern into a Regex.
//
// A *Regex is returned as-is and opts are ignored. A *regexp.Regexp is
// wrapped in a new, uncached Regex embedding that same pointer, so every call
// returns a different *Regex. A []string is joined with "|" and passed to
// MakeRe, as is a string. Any other type fails with ErrExpectedString.
func (c *Cache) ToRegex(pattern any, opts ...Option) (*Regex, error) {
	switch p := pattern.(type) {
	case *Regex:
		if p != nil {
			return p, nil
		}
	case *regexp.Regexp:
		if p != nil {
			return &Regex{Regexp: p, Pattern: p.String(), Key: p.String()}, nil
		}
	case string:
		return c.MakeRe(p, opts...)
	case []string:
		return c.MakeRe(strings.Join(p, "|"), opts...)
	}

	return nil, fmt.Errorf("%w, got %T", ErrExpectedString, pattern)
}

// MakeRe compiles pattern with opts, or returns the cached Regex for the same
// pattern and options.
//
// Unless the cache option is false, the result is stored and every later call
// with the same key returns the same *Regex.
func (c *Cache) MakeRe(pattern string, opts ...Option) (*Regex, error) {
	if n := utf16Len(pattern); n > MaxLength {
		return nil, fmt.Errorf("%w: expected pattern to be less than %d characters, got %d",
			ErrPatternTooLong, MaxLength, n)
	}

	original := NewOptions(opts...)
	if original.isFalse(OptionCache) {
		return c.build(pattern, pattern, original)
	}

	key := deriveKey(pattern, original)
	if re, ok := c.Lookup(key); ok {
		return re, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if re, ok := c.Lookup(key); ok {
			return re, nil
		}

		return c.build(key, pattern, original)
	})
	if err != nil {
		return nil, err
	}

	return v.(*Regex), nil
}

// build resolves the options, assembles and compiles the source, and applies
// the fallback chain on failure.
func (c *Cache) build(key, pattern string, original *Options) (*Regex, error) {
	opts := resolveOptions(original)

	openAnchor, closeAnchor := "^", "$"
	if opts.isFalse(OptionStrictOpen) {
		openAnchor = ""
	}
	if opts.isFalse(OptionStrictClose) {
		closeAnchor = ""
	}

	flags := opts.Flags()
	if opts.Bool(OptionNocase) && !strings.Contains(flags, "i") {
		flags += "i"
	}

	compiled := pattern
	if opts.truthy(OptionNegate) || opts.isBool(OptionStrictNegate) {
		compiled = negate.Create(pattern, negate.Options{
			Loose:   opts.isFalse(OptionStrictNegate) || opts.Bool(OptionContains),
			NoOpen:  opts.isFalse(OptionStrictOpen),
			NoClose: opts.isFalse(OptionStrictClose),
			EndChar: opts.str(OptionEndChar),
		})
	}

	outcome := OutcomeCompiled
	re, err := compile(openAnchor+"(?:"+compiled+")"+closeAnchor, flags, opts.Bool(OptionSafe))
	if err != nil {
		if opts.Bool(OptionStrictErrors) || opts.Bool(OptionSafe) {
			return nil, &CompileError{
				Key:             key,
				Pattern:         compiled,
				OriginalOptions: original,
				CreatedOptions:  opts,
				Err:             err,
			}
		}

		re, outcome = fallback(pattern)
		c.logger.Debug().
			Err(err).
			Str("key", key).
			Stringer("outcome", outcome).
			Msg("compile failed, using fallback")
	}

	result := &Regex{
		Regexp:  re,
		Pattern: compiled,
		Options: opts,
		Key:     key,
		Outcome: outcome,
	}
	if opts.isFalse(OptionCache) {
		return result, nil
	}

	return c.store(result, key, compiled, opts), nil
}

// resolveOptions returns a copy of original with the interactions between
// contains, negate and strict applied.
func resolveOptions(original *Options) *Options {
	opts := original.Clone()

	if opts.Bool(OptionContains) {
		if opts.Bool(OptionNegate) {
			opts.set(OptionStrictNegate, false)
		} else {
			opts.set(OptionStrict, false)
		}
	}

	if opts.isFalse(OptionStrict) {
		opts.set(OptionStrictOpen, false)
		opts.set(OptionStrictClose, false)
	}

	return opts
}

func compile(source, flags string, safe bool) (*regexp.Regexp, error) {
	re, err := regexp.CompileFlags(source, flags)
	if err != nil {
		return nil, err
	}

	if safe && !safety.IsSafe(source) {
		return nil, fmt.Errorf("%w: %s", ErrUnsafePattern, source)
	}

	return re, nil
}

// fallback compiles pattern as an anchored literal, or returns a regex that
// matches nothing if even that fails.
func fallback(pattern string) (*regexp.Regexp, Outcome) {
	if re, err := regexp.Compile("^" + escapeNonWord(pattern) + "$"); err == nil {
		return re, OutcomeLiteral
	}

	return regexp.MustCompile(noMatch), OutcomeNoMatch
}

// escapeNonWord backslash-escapes every ASCII character outside [A-Za-z0-9_].
// Other runes are copied unchanged.
func escapeNonWord(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r < utf8.RuneSelf && !isWordByte(byte(r)) {
			b.WriteByte('\\')
		}
		b.WriteString(s[i : i+size])
		i += size
	}

	return b.String()
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}

	return n
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
