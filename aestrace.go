// Package aestrace implements AES-128/192/256 with a human-readable trace of
// every internal step: key expansion, SubBytes, ShiftRows, MixColumns,
// AddRoundKey and their inverses, and ECB/CBC chaining.
//
// It is a teaching tool. Inputs and outputs are hex strings, inputs must
// already be block aligned, and nothing here is hardened against side
// channels.
//
// Example usage:
//
//	res, err := aestrace.Encrypt(
//		"00112233445566778899aabbccddeeff",
//		"000102030405060708090a0b0c0d0e0f",
//		aestrace.ECB, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Hex)   // 69c4e0d86a7b0430d8cdb78070b4c55a
//	fmt.Println(res.Trace) // one line per transformation
//
// The byte-level engine lives in the subtle package.
package aestrace

import (
	"errors"
	"fmt"

	"github.com/vdparikh/aestrace/subtle"
)

// Mode is a block chaining mode.
type Mode = subtle.Mode

const (
	ECB = subtle.ECB
	CBC = subtle.CBC
)

// ParseMode accepts "ecb" or "cbc" in any case.
func ParseMode(s string) (Mode, error) {
	m, err := subtle.ParseMode(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return m, nil
}

// KeyExpansion is the result of ExpandKey.
type KeyExpansion struct {
	Variant  subtle.Variant
	Expanded []byte
	Trace    string
}

// Hex returns the expanded key as one contiguous hex string.
func (e *KeyExpansion) Hex() string {
	return encodeHex(e.Expanded)
}

// RoundKeysHex returns the expanded key with one 32-character round key per
// line.
func (e *KeyExpansion) RoundKeysHex() string {
	return wrapLines(e.Hex(), 2*subtle.BlockSize)
}

// Result is the output of an encryption or decryption.
type Result struct {
	// Hex is the ciphertext or plaintext.
	Hex string
	// Trace has one line per transformation, newline separated.
	Trace string
}

// ExpandKey expands a 128, 192 or 256-bit hex key into its full round-key
// schedule and reports every expansion step.
func ExpandKey(hexKey string) (*KeyExpansion, error) {
	key, err := decodeKey(hexKey)
	if err != nil {
		return nil, err
	}
	tr := subtle.NewTrace()
	ks, err := subtle.ExpandKey(key, tr)
	if err != nil {
		return nil, keyError(err)
	}
	return &KeyExpansion{
		Variant:  ks.Variant(),
		Expanded: ks.Expanded(),
		Trace:    tr.String(),
	}, nil
}

// Encrypt encrypts block-aligned hex plaintext under hexKey. An empty ivHex
// means an all-zero IV; the IV is ignored in ECB mode.
func Encrypt(plaintextHex, hexKey string, mode Mode, ivHex string) (*Result, error) {
	if _, err := decodeBlocks("plaintext", plaintextHex); err != nil {
		return nil, err
	}
	c, err := NewCipher(hexKey, mode)
	if err != nil {
		return nil, err
	}
	return c.Encrypt(plaintextHex, ivHex)
}

// Decrypt decrypts block-aligned hex ciphertext under hexKey. An empty ivHex
// means an all-zero IV; the IV is ignored in ECB mode.
func Decrypt(ciphertextHex, hexKey string, mode Mode, ivHex string) (*Result, error) {
	if _, err := decodeBlocks("ciphertext", ciphertextHex); err != nil {
		return nil, err
	}
	c, err := NewCipher(hexKey, mode)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(ciphertextHex, ivHex)
}

// Cipher is a key and mode bound together. The key schedule is computed once
// and reused by every call. A Cipher is safe for concurrent use as long as
// SetWorkers is not called concurrently.
type Cipher struct {
	driver subtle.Driver
}

var _ TraceCipher = (*Cipher)(nil)

// NewCipher expands hexKey and returns a Cipher for mode.
func NewCipher(hexKey string, mode Mode) (*Cipher, error) {
	if mode != ECB && mode != CBC {
		return nil, fmt.Errorf("%w: unknown mode %v", ErrInvalidFormat, mode)
	}
	key, err := decodeKey(hexKey)
	if err != nil {
		return nil, err
	}
	ks, err := subtle.ExpandKey(key, nil)
	if err != nil {
		return nil, keyError(err)
	}
	return NewCipherFromSchedule(ks, mode), nil
}

// NewCipherFromSchedule wraps an already expanded key.
func NewCipherFromSchedule(ks *subtle.KeySchedule, mode Mode) *Cipher {
	return &Cipher{driver: subtle.Driver{
		Cipher: subtle.NewCipherWithSchedule(ks),
		Mode:   mode,
	}}
}

// Mode returns the chaining mode.
func (c *Cipher) Mode() Mode { return c.driver.Mode }

// Schedule returns the expanded key.
func (c *Cipher) Schedule() *subtle.KeySchedule { return c.driver.Cipher.Schedule() }

// SetWorkers spreads ECB blocks over n goroutines. Output and trace do not
// change. It has no effect in CBC mode.
func (c *Cipher) SetWorkers(n int) { c.driver.Workers = n }

// Encrypt encrypts block-aligned hex plaintext.
func (c *Cipher) Encrypt(plaintextHex, ivHex string) (*Result, error) {
	return c.run("plaintext", plaintextHex, ivHex, c.driver.Encrypt)
}

// Decrypt decrypts block-aligned hex ciphertext.
func (c *Cipher) Decrypt(ciphertextHex, ivHex string) (*Result, error) {
	return c.run("ciphertext", ciphertextHex, ivHex, c.driver.Decrypt)
}

func (c *Cipher) run(field, dataHex, ivHex string, fn func(iv, src []byte, tr *subtle.Trace) ([]byte, error)) (*Result, error) {
	data, err := decodeBlocks(field, dataHex)
	if err != nil {
		return nil, err
	}
	var iv []byte
	if c.driver.Mode == CBC {
		if iv, err = decodeIV(ivHex); err != nil {
			return nil, err
		}
	}

	tr := subtle.NewTrace()
	out, err := fn(iv, data, tr)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", field, err)
	}
	return &Result{Hex: encodeHex(out), Trace: tr.String()}, nil
}

func keyError(err error) error {
	var kse subtle.KeySizeError
	if errors.As(err, &kse) {
		return fmt.Errorf("%w: key is %d bytes, must be 16, 24 or 32", ErrInvalidKeySize, int(kse))
	}
	return err
}
