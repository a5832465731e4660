// Package safety flags regular expressions that are prone to catastrophic
// backtracking.
//
// The check is the star-height heuristic: a pattern is unsafe when a
// repetition is nested inside another repetition, or when it contains more
// repetitions than a fixed limit. It is conservative and purely syntactic,
// so it works the same for sources executed by either engine.
package safety

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultLimit is the maximum number of repetitions a safe pattern may use.
const DefaultLimit = 25

var errSyntax = errors.New("safety: cannot parse pattern")

// Checker checks sources against a repetition limit. The zero value uses
// DefaultLimit.
type Checker struct {
	Limit int
}

// IsSafe reports whether source passes the check with DefaultLimit.
func IsSafe(source string) bool {
	return Checker{}.IsSafe(source)
}

// IsSafe reports whether source passes the check. Sources that cannot be
// parsed are reported as unsafe.
func (c Checker) IsSafe(source string) bool {
	tree, err := parse(source)
	if err != nil {
		return false
	}

	w := walker{limit: c.Limit}
	if w.limit <= 0 {
		w.limit = DefaultLimit
	}

	return w.alternation(tree, 0)
}

// node is an atom (no alternatives) or a group.
type node struct {
	repeated bool
	alts     [][]*node
}

type walker struct {
	limit int
	reps  int
}

func (w *walker) alternation(alts [][]*node, height int) bool {
	for _, seq := range alts {
		for _, n := range seq {
			if !w.node(n, height) {
				return false
			}
		}
	}

	return true
}

func (w *walker) node(n *node, height int) bool {
	if n.repeated {
		height++
		w.reps++
		if height > 1 || w.reps > w.limit {
			return false
		}
	}

	return w.alternation(n.alts, height)
}

type parser struct {
	src string
	pos int
}

func parse(src string) ([][]*node, error) {
	p := &parser{src: src}

	alts, err := p.alternation()
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.src) {
		return nil, fmt.Errorf("%w: unmatched ) at offset %d", errSyntax, p.pos)
	}

	return alts, nil
}

// alternation parses until an unconsumed ')' or the end of input.
func (p *parser) alternation() ([][]*node, error) {
	alts := [][]*node{nil}

	for p.pos < len(p.src) {
		cur := len(alts) - 1

		switch c := p.src[p.pos]; c {
		case ')':
			return alts, nil
		case '|':
			p.pos++
			alts = append(alts, nil)
		case '*', '+', '?':
			p.pos++
			if err := p.repeat(alts[cur], c); err != nil {
				return nil, err
			}
		case '{':
			if end, ok := p.braceQuantifier(); ok {
				p.pos = end
				if err := p.repeat(alts[cur], c); err != nil {
					return nil, err
				}
				continue
			}
			p.pos++
			alts[cur] = append(alts[cur], &node{})
		case '(':
			p.pos++
			p.skipGroupPrefix()

			inner, err := p.alternation()
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.src) {
				return nil, fmt.Errorf("%w: unterminated group", errSyntax)
			}
			p.pos++

			alts[cur] = append(alts[cur], &node{alts: inner})
		case '[':
			if err := p.class(); err != nil {
				return nil, err
			}
			alts[cur] = append(alts[cur], &node{})
		case '\\':
			if p.pos+1 >= len(p.src) {
				return nil, fmt.Errorf("%w: trailing backslash", errSyntax)
			}
			_, size := utf8.DecodeRuneInString(p.src[p.pos+1:])
			p.pos += 1 + size
			alts[cur] = append(alts[cur], &node{})
		default:
			_, size := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += size
			alts[cur] = append(alts[cur], &node{})
		}
	}

	return alts, nil
}

// repeat marks the last node of seq as repeated. A quantifier following
// another quantifier is a lazy or possessive modifier.
func (p *parser) repeat(seq []*node, q byte) error {
	if len(seq) == 0 {
		return fmt.Errorf("%w: nothing to repeat at offset %d", errSyntax, p.pos)
	}

	last := seq[len(seq)-1]
	if last.repeated {
		if q == '?' || q == '+' {
			return nil
		}
		return fmt.Errorf("%w: nested quantifier at offset %d", errSyntax, p.pos)
	}

	last.repeated = true
	return nil
}

// braceQuantifier reports whether a {n}, {n,} or {n,m} quantifier starts at
// the current position and where it ends.
func (p *parser) braceQuantifier() (int, bool) {
	i := p.pos + 1
	digits := 0
	for i < len(p.src) && isDigit(p.src[i]) {
		i++
		digits++
	}
	if digits == 0 || i >= len(p.src) {
		return 0, false
	}

	if p.src[i] == ',' {
		i++
		for i < len(p.src) && isDigit(p.src[i]) {
			i++
		}
	}

	if i >= len(p.src) || p.src[i] != '}' {
		return 0, false
	}

	return i + 1, true
}

func (p *parser) skipGroupPrefix() {
	rest := p.src[p.pos:]
	if len(rest) < 2 || rest[0] != '?' {
		return
	}

	switch {
	case hasPrefix(rest, "?<=", "?<!"):
		p.pos += 3
	case hasPrefix(rest, "?:", "?=", "?!", "?>", "?|"):
		p.pos += 2
	case hasPrefix(rest, "?P<", "?<"):
		p.skipPast('>')
	case hasPrefix(rest, "?'"):
		p.pos += 2
		p.skipPast('\'')
	case hasPrefix(rest, "?P="):
		for p.pos < len(p.src) && p.src[p.pos] != ')' {
			p.pos++
		}
	default:
		// Inline flags: (?i) or (?i-s:...).
		i := p.pos + 1
		for i < len(p.src) && isFlagChar(p.src[i]) {
			i++
		}
		if i < len(p.src) && p.src[i] == ':' {
			i++
		}
		p.pos = i
	}
}

func (p *parser) skipPast(c byte) {
	for p.pos < len(p.src) {
		p.pos++
		if p.src[p.pos-1] == c {
			return
		}
	}
}

// class consumes a bracket expression starting at '['.
func (p *parser) class() error {
	p.pos++
	if p.pos < len(p.src) && p.src[p.pos] == '^' {
		p.pos++
	}
	// A leading ']' is a literal.
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
	}

	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
		case '[':
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == ':' {
				end := strings.Index(p.src[p.pos+2:], ":]")
				if end < 0 {
					return fmt.Errorf("%w: unterminated character class", errSyntax)
				}
				p.pos += 2 + end + 2
				continue
			}
			p.pos++
		case ']':
			p.pos++
			return nil
		default:
			p.pos++
		}
	}

	return fmt.Errorf("%w: unterminated character class", errSyntax)
}

func hasPrefix(s string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isFlagChar(c byte) bool {
	return c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
