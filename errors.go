package aestrace

import "errors"

var (
	// ErrInvalidFormat is returned for input that is not hexadecimal, has the
	// wrong length for its field, or names an unknown mode.
	ErrInvalidFormat = errors.New("aestrace: invalid format")

	// ErrInvalidKeySize is returned for keys that are not 16, 24 or 32 bytes.
	ErrInvalidKeySize = errors.New("aestrace: invalid key size")
)
