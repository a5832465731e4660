package regexp

import (
	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
)

// Engine identifies the backend a [Regexp] was compiled with.
type Engine uint8

const (
	// EngineCore is coregex, used for everything RE2 can express.
	EngineCore Engine = iota
	// EnginePCRE is regexp2, used for lookarounds, backreferences and other
	// backtracking-only constructs.
	EnginePCRE
)

func (e Engine) String() string {
	switch e {
	case EngineCore:
		return "coregex"
	case EnginePCRE:
		return "regexp2"
	default:
		return "unknown"
	}
}

// Regexp is a compiled regular expression that delegates to either coregex
// or regexp2 depending on the pattern features detected at compile time.
type Regexp struct {
	source string
	flags  Flag
	core   *coregex.Regex
	pcre   *regexp2.Regexp
}

// Compile parses a regular expression without flags.
func Compile(pattern string) (*Regexp, error) {
	return CompileFlags(pattern, "")
}

// CompileFlags parses a regular expression and applies the given flag
// string (see [ParseFlags]). Patterns that require PCRE-only features
// (detected by needsPCRE) are compiled with regexp2; everything else uses
// coregex.
func CompileFlags(pattern, flags string) (*Regexp, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		return nil, err
	}

	if needsPCRE(pattern) {
		expr := pattern
		if !f.Has(FlagMultiline) {
			expr = endOfText(pattern)
		}

		re, err := regexp2.Compile(expr, f.pcreOptions())
		if err != nil {
			return nil, err
		}

		return &Regexp{source: pattern, flags: f, pcre: re}, nil
	}

	re, err := coregex.Compile(f.inline() + pattern)
	if err != nil {
		return nil, err
	}

	return &Regexp{source: pattern, flags: f, core: re}, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}

	return re
}

// QuoteMeta escapes all regular expression metacharacters in s.
func QuoteMeta(s string) string {
	return coregex.QuoteMeta(s)
}

// String returns the source pattern, without flags.
func (r *Regexp) String() string {
	return r.source
}

// Flags returns the flags the Regexp was compiled with.
func (r *Regexp) Flags() Flag {
	return r.flags
}

// Engine reports which backend executes the Regexp.
func (r *Regexp) Engine() Engine {
	if r.core != nil {
		return EngineCore
	}

	return EnginePCRE
}

// Match reports whether the byte slice b contains any match of the Regexp.
func (r *Regexp) Match(b []byte) bool {
	if r.core != nil {
		return r.core.Match(b)
	}

	return r.MatchString(string(b))
}

// MatchString reports whether the string s contains any match of the Regexp.
// A regexp2 match that errors (for example on timeout) counts as no match.
func (r *Regexp) MatchString(s string) bool {
	if r.core != nil {
		return r.core.MatchString(s)
	}

	matched, err := r.pcre.MatchString(s)
	return err == nil && matched
}

// FindString returns the leftmost match of the Regexp in s.
func (r *Regexp) FindString(s string) string {
	if r.core != nil {
		return r.core.FindString(s)
	}

	m, err := r.pcre.FindStringMatch(s)
	if err != nil || m == nil {
		return ""
	}

	return m.String()
}

// FindStringIndex returns a two-element slice with the byte offsets of the
// leftmost match in s, or nil.
func (r *Regexp) FindStringIndex(s string) []int {
	if r.core != nil {
		return r.core.FindStringIndex(s)
	}

	m, err := r.pcre.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}

	start, end := runeRangeToByte(s, m.Index, m.Length)
	return []int{start, end}
}

// FindStringSubmatch returns the leftmost match of the Regexp in s and its
// submatches.
func (r *Regexp) FindStringSubmatch(s string) []string {
	if r.core != nil {
		return r.core.FindStringSubmatch(s)
	}

	m, err := r.pcre.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}

	return groupsToStrings(m.Groups())
}

// FindAllString returns up to n successive matches of the Regexp in s. A
// negative n returns all matches.
func (r *Regexp) FindAllString(s string, n int) []string {
	if r.core != nil {
		return r.core.FindAllString(s, n)
	}

	var matches []string
	m, err := r.pcre.FindStringMatch(s)
	for err == nil && m != nil {
		if n >= 0 && len(matches) >= n {
			break
		}

		matches = append(matches, m.String())
		m, err = r.pcre.FindNextMatch(m)
	}

	return matches
}

// ReplaceAllString returns a copy of src with every match replaced by repl.
// On a regexp2 error src is returned unchanged.
func (r *Regexp) ReplaceAllString(src, repl string) string {
	if r.core != nil {
		return r.core.ReplaceAllString(src, repl)
	}

	replaced, err := r.pcre.Replace(src, repl, -1, -1)
	if err != nil {
		return src
	}

	return replaced
}

// Split slices s into substrings separated by the Regexp.
func (r *Regexp) Split(s string, n int) []string {
	if r.core != nil {
		return r.core.Split(s, n)
	}

	if n == 0 {
		return nil
	}

	var parts []string
	last := 0

	m, err := r.pcre.FindStringMatch(s)
	for err == nil && m != nil {
		if n > 0 && len(parts)+1 >= n {
			break
		}

		start, end := runeRangeToByte(s, m.Index, m.Length)
		parts = append(parts, s[last:start])
		last = end

		m, err = r.pcre.FindNextMatch(m)
	}

	return append(parts, s[last:])
}

// NumSubexp returns the number of parenthesized subexpressions.
func (r *Regexp) NumSubexp() int {
	if r.core != nil {
		return r.core.NumSubexp()
	}

	highest := 0
	for _, v := range r.pcre.GetGroupNumbers() {
		highest = max(highest, v)
	}

	return highest
}

// Longest switches coregex to leftmost-longest matching. regexp2 keeps its
// backtracking semantics.
func (r *Regexp) Longest() {
	if r.core != nil {
		r.core.Longest()
	}
}

func groupsToStrings(groups []regexp2.Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		if len(g.Captures) == 0 {
			continue
		}
		out[i] = g.String()
	}

	return out
}

// runeRangeToByte converts the rune offsets reported by regexp2 into byte
// offsets of s.
func runeRangeToByte(s string, startRune, length int) (int, int) {
	if startRune < 0 || length < 0 {
		return -1, -1
	}

	return runeToByteOffset(s, startRune), runeToByteOffset(s, startRune+length)
}

func runeToByteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}

	count := 0
	for i := range s {
		if count == runeIndex {
			return i
		}
		count++
	}

	return len(s)
}
