package toregex

import "errors"

// ErrExpectedString is returned when the pattern is neither a string, a list
// of strings, nor an already compiled regex.
var ErrExpectedString = errors.New("expected a string")

// ErrPatternTooLong is returned for patterns longer than MaxLength.
var ErrPatternTooLong = errors.New("pattern too long")

// ErrUnsafePattern is returned in safe mode when the assembled source is
// prone to catastrophic backtracking.
var ErrUnsafePattern = errors.New("potentially unsafe regular expression")

// CompileError is returned when compilation fails with [WithStrictErrors] or
// [WithSafe] set. It carries the inputs of the failed compilation.
type CompileError struct {
	// Key is the cache key of the call.
	Key string
	// Pattern is the pattern that was wrapped and compiled, after negation.
	Pattern string
	// OriginalOptions are the options as passed by the caller.
	OriginalOptions *Options
	// CreatedOptions are the options after resolution.
	CreatedOptions *Options
	// Err is the underlying cause.
	Err error
}

func (e *CompileError) Error() string {
	return e.Err.Error()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
