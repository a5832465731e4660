package regexp

import (
	"errors"
	"testing"
)

func TestCompileEngineSelection(t *testing.T) {
	tests := []struct {
		pattern string
		want    Engine
	}{
		{pattern: "a+", want: EngineCore},
		{pattern: "^(?:foo|bar)$", want: EngineCore},
		{pattern: "(?<=a)b", want: EnginePCRE},
		{pattern: "^(?:(?:(?!^(?:abc)$).)+)$", want: EnginePCRE},
		{pattern: `(\w+)\s+\1`, want: EnginePCRE},
		{pattern: `\\1`, want: EngineCore},
		{pattern: "(?<year>\\d{4})", want: EnginePCRE},
		{pattern: "(?P<year>\\d{4})", want: EngineCore},
	}

	for _, tt := range tests {
		re, err := Compile(tt.pattern)
		if err != nil {
			t.Fatalf("compile %q: %v", tt.pattern, err)
		}
		if got := re.Engine(); got != tt.want {
			t.Fatalf("Engine(%q): got %s want %s", tt.pattern, got, tt.want)
		}
		if re.String() != tt.pattern {
			t.Fatalf("String(%q): got %q", tt.pattern, re.String())
		}
	}
}

func TestCoreMatchAndFind(t *testing.T) {
	re := MustCompile("a+")

	if !re.MatchString("caaab") {
		t.Fatalf("MatchString core: expected true")
	}

	if got := re.FindString("caaab"); got != "aaa" {
		t.Fatalf("FindString core: got %q", got)
	}

	if idx := re.FindStringIndex("caaab"); idx[0] != 1 || idx[1] != 4 {
		t.Fatalf("FindStringIndex core: got %v", idx)
	}

	reAlt := MustCompile("(a|ab)")
	if got := reAlt.FindString("ab"); got != "a" {
		t.Fatalf("FindString core alt (leftmost-first): got %q", got)
	}
	reAlt.Longest()
	if got := reAlt.FindString("ab"); got != "ab" {
		t.Fatalf("FindString core alt (longest): got %q", got)
	}
}

func TestPCREBackreference(t *testing.T) {
	re := MustCompile(`(\w+)\s+\1`)

	if !re.MatchString("go go") {
		t.Fatalf("MatchString pcre backref: expected true")
	}

	if !re.Match([]byte("go go")) {
		t.Fatalf("Match pcre backref: expected true")
	}

	if idx := re.FindStringIndex("go go"); idx[0] != 0 || idx[1] != 5 {
		t.Fatalf("FindStringIndex pcre backref: got %v", idx)
	}

	sm := re.FindStringSubmatch("go go")
	if len(sm) != 2 || sm[0] != "go go" || sm[1] != "go" {
		t.Fatalf("FindStringSubmatch pcre backref: got %v", sm)
	}

	if n := re.NumSubexp(); n != 1 {
		t.Fatalf("NumSubexp pcre backref: got %d", n)
	}
}

func TestPCRELookbehindRuneOffsets(t *testing.T) {
	// Emoji is 4 bytes; ensures rune-to-byte conversion is correct.
	re := MustCompile("(?<=🙂)a")

	idxs := re.FindStringIndex("🙂a🙂a")
	if len(idxs) != 2 || idxs[0] != 4 || idxs[1] != 5 {
		t.Fatalf("FindStringIndex pcre lookbehind: got %v", idxs)
	}

	all := re.FindAllString("🙂a🙂a", -1)
	if len(all) != 2 || all[0] != "a" || all[1] != "a" {
		t.Fatalf("FindAllString pcre lookbehind: got %v", all)
	}

	if got := re.FindAllString("🙂a🙂a", 1); len(got) != 1 {
		t.Fatalf("FindAllString pcre lookbehind n=1: got %v", got)
	}
}

func TestPCREReplaceAndSplit(t *testing.T) {
	re := MustCompile("(?<=a)b")

	if out := re.ReplaceAllString("ab ab", "X"); out != "aX aX" {
		t.Fatalf("ReplaceAllString pcre: got %q", out)
	}

	parts := MustCompile("(?<=a),").Split("a,b,a,c", -1)
	expect := []string{"a", "b,a", "c"}
	if len(parts) != len(expect) {
		t.Fatalf("Split pcre len: got %v", parts)
	}
	for i := range expect {
		if parts[i] != expect[i] {
			t.Fatalf("Split pcre[%d]: got %q want %q", i, parts[i], expect[i])
		}
	}

	if parts := MustCompile(",").Split("a,b,c", 2); len(parts) != 2 || parts[1] != "b,c" {
		t.Fatalf("Split core n=2: got %v", parts)
	}
}

func TestCompileFlags(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flags   string
		input   string
		want    bool
	}{
		{name: "case sensitive", pattern: "^abc$", input: "ABC", want: false},
		{name: "ignore case core", pattern: "^abc$", flags: "i", input: "ABC", want: true},
		{name: "ignore case pcre", pattern: "^(?:(?!x)abc)$", flags: "i", input: "ABC", want: true},
		{name: "multiline core", pattern: "^b$", flags: "m", input: "a\nb", want: true},
		{name: "multiline pcre", pattern: "^(?=b)b$", flags: "m", input: "a\nb", want: true},
		{name: "dot all core", pattern: "^a.b$", flags: "s", input: "a\nb", want: true},
		{name: "dot all pcre", pattern: "^(?!x)a.b$", flags: "s", input: "a\nb", want: true},
		{name: "no dot all", pattern: "^a.b$", input: "a\nb", want: false},
		{name: "global is inert", pattern: "^abc$", flags: "g", input: "abc", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := CompileFlags(tt.pattern, tt.flags)
			if err != nil {
				t.Fatalf("CompileFlags(%q, %q): %v", tt.pattern, tt.flags, err)
			}
			if got := re.MatchString(tt.input); got != tt.want {
				t.Fatalf("MatchString(%q): got %v want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags("yig")
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if got := f.String(); got != "giy" {
		t.Fatalf("String: got %q want %q", got, "giy")
	}
	if !f.Has(FlagIgnoreCase | FlagSticky) {
		t.Fatalf("Has: expected i and y")
	}
	if f.Has(FlagMultiline) {
		t.Fatalf("Has: unexpected m")
	}

	for _, bad := range []string{"x", "ii", "uv"} {
		if _, err := ParseFlags(bad); !errors.Is(err, ErrInvalidFlags) {
			t.Fatalf("ParseFlags(%q): expected ErrInvalidFlags, got %v", bad, err)
		}
	}

	if _, err := CompileFlags("abc", "q"); !errors.Is(err, ErrInvalidFlags) {
		t.Fatalf("CompileFlags: expected ErrInvalidFlags, got %v", err)
	}
}

func TestCompileErrors(t *testing.T) {
	for _, pattern := range []string{"[abc", "(abc", "a)"} {
		if _, err := Compile(pattern); err == nil {
			t.Fatalf("Compile(%q): expected error", pattern)
		}
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustCompile: expected panic")
		}
	}()
	MustCompile("[abc")
}

func TestQuoteMeta(t *testing.T) {
	re := MustCompile("^" + QuoteMeta("a.b*c") + "$")
	if !re.MatchString("a.b*c") || re.MatchString("axbbc") {
		t.Fatalf("QuoteMeta: pattern %q matched incorrectly", re)
	}
}

func TestEndOfText(t *testing.T) {
	tests := map[string]string{
		"abc":                   "abc",
		"^a$":                   `^a\z`,
		`a\$`:                   `a\$`,
		"[$]$":                  `[$]\z`,
		"[]$]$":                 `[]$]\z`,
		"[^]$]$":                `[^]$]\z`,
		`[\]$]$`:                `[\]$]\z`,
		"^(?:(?!^(?:abc)$).)+$": `^(?:(?!^(?:abc)\z).)+\z`,
	}

	for in, want := range tests {
		if got := endOfText(in); got != want {
			t.Fatalf("endOfText(%q): got %q want %q", in, got, want)
		}
	}
}

func TestPCREDollarIsEndOfText(t *testing.T) {
	tests := []struct {
		pattern string
		flags   string
		input   string
		want    bool
	}{
		{pattern: "^a(?=b)b$", input: "ab\n", want: false},
		{pattern: "^a(?=b)b$", input: "ab", want: true},
		{pattern: `^(a)\1$`, input: "aa\n", want: false},
		{pattern: "^a(?=b)b$", flags: "m", input: "ab\nc", want: true},
		{pattern: "^[$](?=x)x$", input: "$x", want: true},
	}

	for _, tt := range tests {
		re, err := CompileFlags(tt.pattern, tt.flags)
		if err != nil {
			t.Fatalf("CompileFlags(%q, %q): %v", tt.pattern, tt.flags, err)
		}
		if re.Engine() != EnginePCRE {
			t.Fatalf("Engine(%q): expected regexp2", tt.pattern)
		}
		if re.String() != tt.pattern {
			t.Fatalf("String(%q): got %q", tt.pattern, re.String())
		}
		if got := re.MatchString(tt.input); got != tt.want {
			t.Fatalf("MatchString(%q, %q): got %v want %v", tt.pattern, tt.input, got, tt.want)
		}
	}
}
