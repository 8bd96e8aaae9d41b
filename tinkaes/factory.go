package tinkaes

import (
	"fmt"

	"github.com/google/tink/go/keyset"
	"github.com/vdparikh/aestrace"
	"github.com/vdparikh/aestrace/subtle"
)

// New creates a TraceCipher from a Tink keyset handle.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkaes.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	c, err := tinkaes.New(handle, aestrace.CBC)
//	if err != nil {
//	    return err
//	}
//	res, err := c.Encrypt("00112233445566778899aabbccddeeff", "")
//
// The KeyManager is registered on first use.
func New(handle *keyset.Handle, mode aestrace.Mode) (aestrace.TraceCipher, error) {
	if handle == nil {
		return nil, fmt.Errorf("tinkaes: keyset handle cannot be nil")
	}
	if mode != aestrace.ECB && mode != aestrace.CBC {
		return nil, fmt.Errorf("tinkaes: %w: unknown mode %v", aestrace.ErrInvalidFormat, mode)
	}
	if err := Register(); err != nil {
		return nil, fmt.Errorf("tinkaes: failed to register key manager: %w", err)
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("tinkaes: failed to get primitives from handle: %w", err)
	}
	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("tinkaes: no primary key found in keyset")
	}

	ks, ok := primary.Primitive.(*subtle.KeySchedule)
	if !ok {
		return nil, fmt.Errorf("tinkaes: primary key %d is not a traced AES key", primary.KeyID)
	}
	return aestrace.NewCipherFromSchedule(ks, mode), nil
}
