package regexp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// ErrInvalidFlags is returned for flag strings with unknown or repeated
// letters.
var ErrInvalidFlags = errors.New("invalid regular expression flags")

// Flag is a set of compile flags.
type Flag uint8

const (
	FlagIndices     Flag = 1 << iota // d
	FlagGlobal                       // g
	FlagIgnoreCase                   // i
	FlagMultiline                    // m
	FlagDotAll                       // s
	FlagUnicode                      // u
	FlagUnicodeSets                  // v
	FlagSticky                       // y
)

const flagLetters = "dgimsuvy"

// ParseFlags parses a flag string such as "gi".
//
// Only i, m and s change how a pattern matches. The remaining letters are
// accepted so that flag strings written for other engines survive a round
// trip through [Regexp.Flags].
func ParseFlags(s string) (Flag, error) {
	var f Flag

	for _, c := range s {
		i := strings.IndexRune(flagLetters, c)
		if i < 0 {
			return 0, fmt.Errorf("%w: unknown flag %q in %q", ErrInvalidFlags, c, s)
		}

		bit := Flag(1) << i
		if f&bit != 0 {
			return 0, fmt.Errorf("%w: duplicate flag %q in %q", ErrInvalidFlags, c, s)
		}

		f |= bit
	}

	if f.Has(FlagUnicode) && f.Has(FlagUnicodeSets) {
		return 0, fmt.Errorf("%w: u and v are mutually exclusive", ErrInvalidFlags)
	}

	return f, nil
}

// Has reports whether all bits of other are set in f.
func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// String returns the flags in canonical order.
func (f Flag) String() string {
	var b strings.Builder
	for i := range len(flagLetters) {
		if f&(Flag(1)<<i) != 0 {
			b.WriteByte(flagLetters[i])
		}
	}

	return b.String()
}

// inline renders the matching flags as an RE2 inline group, e.g. "(?is)".
func (f Flag) inline() string {
	var b strings.Builder
	if f.Has(FlagIgnoreCase) {
		b.WriteByte('i')
	}
	if f.Has(FlagMultiline) {
		b.WriteByte('m')
	}
	if f.Has(FlagDotAll) {
		b.WriteByte('s')
	}

	if b.Len() == 0 {
		return ""
	}

	return "(?" + b.String() + ")"
}

func (f Flag) pcreOptions() regexp2.RegexOptions {
	opts := regexp2.None
	if f.Has(FlagIgnoreCase) {
		opts |= regexp2.IgnoreCase
	}
	if f.Has(FlagMultiline) {
		opts |= regexp2.Multiline
	}
	if f.Has(FlagDotAll) {
		opts |= regexp2.Singleline
	}

	return opts
}
