package regexp

import "strings"

// pcreMarkers are substrings that only a backtracking engine can execute.
//
// Ref: https://pcre2project.github.io/pcre2/doc/pcre2syntax/
var pcreMarkers = []string{
	// Lookarounds
	"(?=", "(?!", "(?<=", "(?<!",
	"(*pla:", "(*positive_lookahead:", "(*nla:", "(*negative_lookahead:",
	"(*plb:", "(*positive_lookbehind:", "(*nlb:", "(*negative_lookbehind:",
	// Atomic groups, branch reset, conditionals, comments
	"(?>", "(*atomic:", "(?|", "(?(", "(?#",
	// Recursion and subroutine calls
	"(?R)", "(?P>", "(?&",
	// Backtracking control verbs
	"(*ACCEPT)", "(*FAIL)", "(*F)", "(*COMMIT)", "(*PRUNE)", "(*SKIP)", "(*THEN)",
	// Escapes RE2 rejects
	`\h`, `\H`, `\R`, `\X`, `\K`, `\e`, `\G`, `\Z`,
	`\k<`, `\k'`, `\k{`, `\g{`, `\g<`, `(?P=`,
	// ECMAScript escapes
	`\u`, `\c`,
}

// needsPCRE reports whether pattern uses constructs coregex cannot compile
// but regexp2 can.
func needsPCRE(pattern string) bool {
	for _, v := range pcreMarkers {
		if strings.Contains(pattern, v) {
			return true
		}
	}

	// Numbered backreferences: \1 .. \9 outside of an escaped backslash.
	escaped := false
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '\\' {
			escaped = false
			continue
		}

		if !escaped && i+1 < len(pattern) {
			if next := pattern[i+1]; next >= '1' && next <= '9' {
				return true
			}
		}
		escaped = !escaped
	}

	// NOTE(dwisiswant0): Go supports (?P<name>...) but neither (?<name>...)
	// nor (?'name'...).
	return !strings.Contains(pattern, "(?P<") &&
		(strings.Contains(pattern, "(?<") || strings.Contains(pattern, "(?'"))
}

// endOfText rewrites every unescaped $ outside a character class to \z.
// regexp2 lets a single-line $ match before a final newline; coregex does
// not.
func endOfText(pattern string) string {
	if !strings.Contains(pattern, "$") {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern) + 8)

	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
			continue
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
			// A leading ] (after an optional ^) is a literal.
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
			continue
		case c == '$':
			b.WriteString(`\z`)
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}
