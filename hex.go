package aestrace

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/vdparikh/aestrace/subtle"
)

// IsHex reports whether s is non-empty and consists only of hex digits.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for _, char := range s {
		if !(char >= '0' && char <= '9') &&
			!(char >= 'a' && char <= 'f') &&
			!(char >= 'A' && char <= 'F') {
			return false
		}
	}
	return true
}

// decodeBlocks decodes data that must be a whole, non-zero number of blocks.
func decodeBlocks(field, s string) ([]byte, error) {
	if !IsHex(s) {
		return nil, fmt.Errorf("%w: %s must be hexadecimal", ErrInvalidFormat, field)
	}
	if len(s)%(2*subtle.BlockSize) != 0 {
		return nil, fmt.Errorf("%w: %s must be a multiple of %d hex characters, got %d",
			ErrInvalidFormat, field, 2*subtle.BlockSize, len(s))
	}
	return hex.DecodeString(s)
}

// decodeKey checks the hex form of a key; its size is checked by the key
// schedule.
func decodeKey(s string) ([]byte, error) {
	if !IsHex(s) {
		return nil, fmt.Errorf("%w: key must be hexadecimal", ErrInvalidFormat)
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: key has odd length %d", ErrInvalidFormat, len(s))
	}
	return hex.DecodeString(s)
}

// decodeIV returns nil for an empty IV, which the driver treats as zero.
func decodeIV(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if !IsHex(s) || len(s) != 2*subtle.BlockSize {
		return nil, fmt.Errorf("%w: IV must be %d hex characters", ErrInvalidFormat, 2*subtle.BlockSize)
	}
	return hex.DecodeString(s)
}

func encodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// wrapLines breaks s into lines of at most width characters.
func wrapLines(s string, width int) string {
	if len(s) <= width {
		return s
	}
	lines := make([]string, 0, (len(s)+width-1)/width)
	for len(s) > width {
		lines = append(lines, s[:width])
		s = s[width:]
	}
	if s != "" {
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n")
}
