package toregex

// deriveKey builds the cache key from the pattern and the options as the
// caller passed them, before any resolution.
func deriveKey(pattern string, opts *Options) string {
	if opts.Len() == 0 {
		return pattern
	}

	return pattern + opts.String()
}
