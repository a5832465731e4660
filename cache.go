package toregex

import (
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes compiled regexes by the key derived from a pattern and its
// options. Entries are never evicted and never overwritten; use a separate
// Cache, or Reset, to scope them.
//
// A Cache is safe for concurrent use. Concurrent misses on the same key
// compile once and share the result.
type Cache struct {
	entries sync.Map // key -> *Regex
	group   singleflight.Group
	logger  zerolog.Logger
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger for fallbacks and stores, both at debug level.
// The default logger discards everything.
func WithLogger(logger zerolog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache returns an empty Cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup returns the entry stored under key.
func (c *Cache) Lookup(key string) (*Regex, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	return v.(*Regex), true
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}

// Reset drops every entry. Regexes already handed out stay valid.
func (c *Cache) Reset() {
	c.entries.Clear()
}

// store annotates re and inserts it under key unless an entry already
// exists, in which case the existing entry is returned.
func (c *Cache) store(re *Regex, key, pattern string, opts *Options) *Regex {
	re.Cached = true
	re.Pattern = pattern
	re.Options = opts
	re.Key = key

	actual, loaded := c.entries.LoadOrStore(key, re)
	if !loaded {
		c.logger.Debug().
			Str("key", key).
			Stringer("outcome", re.Outcome).
			Msg("stored regex")
	}

	return actual.(*Regex)
}
