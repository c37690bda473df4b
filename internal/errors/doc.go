// Package apperrors holds the error types shared across rangesum and maps
// them to process exit codes. Types that carry a cause unwrap to it, so
// errors.Is(err, ErrOverflow) works through any number of wrappers.
package apperrors
