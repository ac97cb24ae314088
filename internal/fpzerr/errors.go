// Package fpzerr defines the sentinel errors shared by the container,
// pipeline orchestration, and public API layers, so that every layer wraps
// the same four well-known kinds via %w instead of inventing its own.
package fpzerr

import "errors"

var (
	// ErrInvalidArgument marks a programmer error: non-positive
	// dimensions, a sample-count mismatch, or similar, detected before
	// any coding begins.
	ErrInvalidArgument = errors.New("fpz: invalid argument")

	// ErrCorruptInput marks a malformed container: bad magic, unsupported
	// version, or an invalid type byte.
	ErrCorruptInput = errors.New("fpz: corrupt input")

	// ErrUnexpectedEOF marks a coded stream that ended before the
	// expected sample count was satisfied.
	ErrUnexpectedEOF = errors.New("fpz: unexpected eof")

	// ErrTypeMismatch marks a decode call for the wrong sample width.
	ErrTypeMismatch = errors.New("fpz: type mismatch")
)
