package toregex

import (
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cast"
)

// Names of the options understood by MakeRe. Any other name set with
// [WithOption] is carried along and takes part in the cache key only.
const (
	OptionContains     = "contains"
	OptionNegate       = "negate"
	OptionStrict       = "strict"
	OptionStrictOpen   = "strictOpen"
	OptionStrictClose  = "strictClose"
	OptionNocase       = "nocase"
	OptionFlags        = "flags"
	OptionCache        = "cache"
	OptionSafe         = "safe"
	OptionStrictErrors = "strictErrors"
	OptionStrictNegate = "strictNegate"
	OptionEndChar      = "endChar"
)

// Options is an ordered set of named option values.
//
// Names keep the position in which they were first set; setting a name
// again only replaces its value. The order matters because it is part of the
// cache key. A nil *Options is empty.
type Options struct {
	names  []string
	values map[string]any
}

// Option sets one value on an Options.
type Option func(*Options)

// NewOptions applies opts in order to an empty Options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithContains allows the pattern to match anywhere in the input instead of
// the whole input.
func WithContains(v bool) Option {
	return WithOption(OptionContains, v)
}

// WithNegate inverts the match: the result matches every input the pattern
// does not.
func WithNegate(v bool) Option {
	return WithOption(OptionNegate, v)
}

// WithStrict controls both anchors at once. Only false has an effect.
func WithStrict(v bool) Option {
	return WithOption(OptionStrict, v)
}

// WithStrictOpen controls the leading ^ anchor.
func WithStrictOpen(v bool) Option {
	return WithOption(OptionStrictOpen, v)
}

// WithStrictClose controls the trailing $ anchor.
func WithStrictClose(v bool) Option {
	return WithOption(OptionStrictClose, v)
}

// WithNocase compiles the pattern case-insensitively.
func WithNocase(v bool) Option {
	return WithOption(OptionNocase, v)
}

// WithFlags sets the compile flags, e.g. "ms". See [regexp.ParseFlags].
func WithFlags(flags string) Option {
	return WithOption(OptionFlags, flags)
}

// WithCache controls memoization. False bypasses the cache for the call,
// both lookup and store.
func WithCache(v bool) Option {
	return WithOption(OptionCache, v)
}

// WithSafe rejects patterns prone to catastrophic backtracking and makes
// compile errors propagate.
func WithSafe(v bool) Option {
	return WithOption(OptionSafe, v)
}

// WithStrictErrors makes compile errors propagate instead of falling back.
func WithStrictErrors(v bool) Option {
	return WithOption(OptionStrictErrors, v)
}

// WithStrictNegate selects how a negated pattern is anchored: true rejects
// only inputs the pattern matches as a whole, false rejects any input
// containing a match. Setting it at all enables negation.
func WithStrictNegate(v bool) Option {
	return WithOption(OptionStrictNegate, v)
}

// WithEndChar sets the quantifier of a negated pattern. The default "+"
// never matches the empty string; "*" does.
func WithEndChar(endChar string) Option {
	return WithOption(OptionEndChar, endChar)
}

// WithOption sets an arbitrary named value.
func WithOption(name string, value any) Option {
	return func(o *Options) {
		o.set(name, value)
	}
}

func (o *Options) set(name string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}

	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = value
}

// Get returns the value stored under name.
func (o *Options) Get(name string) (any, bool) {
	if o == nil {
		return nil, false
	}

	v, ok := o.values[name]
	return v, ok
}

// Names returns the option names in enumeration order.
func (o *Options) Names() []string {
	if o == nil {
		return nil
	}

	return append([]string(nil), o.names...)
}

// Len returns the number of options set.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}

	return len(o.names)
}

// Clone returns a shallow copy of o. Values are copied as-is.
func (o *Options) Clone() *Options {
	c := &Options{}
	if o.Len() == 0 {
		return c
	}

	c.names = append([]string(nil), o.names...)
	c.values = maps.Clone(o.values)

	return c
}

// Bool reports whether name is set to true.
func (o *Options) Bool(name string) bool {
	v, _ := o.Get(name)
	b, ok := v.(bool)
	return ok && b
}

// Flags returns the flags option, or "".
func (o *Options) Flags() string {
	return o.str(OptionFlags)
}

// String renders o the way it appears in a cache key: ";name=value" for
// each option in order.
func (o *Options) String() string {
	var b strings.Builder
	for _, name := range o.Names() {
		b.WriteByte(';')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(stringify(o.values[name]))
	}

	return b.String()
}

// isFalse reports whether name is explicitly set to false.
func (o *Options) isFalse(name string) bool {
	v, _ := o.Get(name)
	b, ok := v.(bool)
	return ok && !b
}

// isBool reports whether name holds a bool of either value.
func (o *Options) isBool(name string) bool {
	v, _ := o.Get(name)
	_, ok := v.(bool)
	return ok
}

// truthy follows loose truthiness: non-empty strings and non-zero numbers
// count as set.
func (o *Options) truthy(name string) bool {
	v, ok := o.Get(name)
	if !ok || v == nil {
		return false
	}

	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	}

	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0
	}

	return true
}

func (o *Options) str(name string) string {
	v, ok := o.Get(name)
	if !ok || v == nil {
		return ""
	}

	return stringify(v)
}

// stringify coerces an option value for keys and string options. nil
// renders as "null".
func stringify(v any) string {
	if v == nil {
		return "null"
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return s
}
