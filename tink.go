package aestrace

// TraceCipher is the primitive handed out by the tinkaes package, following
// Tink's primitive pattern (compare tink.DeterministicAEAD). The key and mode
// are bound when the primitive is created.
//
// Both methods are deterministic: the same input and IV always produce the
// same output and the same trace.
type TraceCipher interface {
	// Encrypt encrypts block-aligned hex plaintext. An empty ivHex means an
	// all-zero IV.
	Encrypt(plaintextHex, ivHex string) (*Result, error)

	// Decrypt is the inverse of Encrypt.
	Decrypt(ciphertextHex, ivHex string) (*Result, error)
}
