package subtle

import (
	"crypto/cipher"
	"fmt"
)

// Cipher runs single-block AES over a precomputed KeySchedule.
// It implements crypto/cipher.Block so it can be checked against the
// standard library modes.
type Cipher struct {
	ks *KeySchedule
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher expands key without tracing and returns a Cipher.
func NewCipher(key []byte) (*Cipher, error) {
	ks, err := ExpandKey(key, nil)
	if err != nil {
		return nil, err
	}
	return &Cipher{ks: ks}, nil
}

// NewCipherWithSchedule wraps an existing schedule.
func NewCipherWithSchedule(ks *KeySchedule) *Cipher {
	return &Cipher{ks: ks}
}

// Schedule returns the key schedule in use.
func (c *Cipher) Schedule() *KeySchedule { return c.ks }

// BlockSize returns the AES block size, 16 bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block of src into dst.
func (c *Cipher) Encrypt(dst, src []byte) { c.EncryptTraced(dst, src, nil) }

// Decrypt decrypts the first block of src into dst.
func (c *Cipher) Decrypt(dst, src []byte) { c.DecryptTraced(dst, src, nil) }

// EncryptTraced encrypts one block and records every sub-step in tr.
// Round keys are labelled with their index in the forward schedule.
func (c *Cipher) EncryptTraced(dst, src []byte, tr *Trace) {
	checkBlock(dst, src)
	nr := c.ks.Rounds()

	var s State
	copy(s[:], src)

	s.AddRoundKey(c.ks.roundKey(0))
	tr.State("round 0 addRoundKey (k0)", s[:])

	for round := 1; round < nr; round++ {
		s.SubBytes()
		tr.State(fmt.Sprintf("round %d subBytes", round), s[:])
		s.ShiftRows()
		tr.State(fmt.Sprintf("round %d shiftRows", round), s[:])
		s.MixColumns()
		tr.State(fmt.Sprintf("round %d mixColumns", round), s[:])
		s.AddRoundKey(c.ks.roundKey(round))
		tr.State(fmt.Sprintf("round %d addRoundKey (k%d)", round, round), s[:])
	}

	// The final round has no MixColumns.
	s.SubBytes()
	tr.State(fmt.Sprintf("round %d subBytes", nr), s[:])
	s.ShiftRows()
	tr.State(fmt.Sprintf("round %d shiftRows", nr), s[:])
	s.AddRoundKey(c.ks.roundKey(nr))
	tr.State(fmt.Sprintf("round %d addRoundKey (k%d)", nr, nr), s[:])

	tr.State("end of block", s[:])
	copy(dst, s[:])
}

// DecryptTraced decrypts one block and records every sub-step in tr.
// Round keys are consumed in reverse order; within a middle round AddRoundKey
// comes before InvMixColumns.
func (c *Cipher) DecryptTraced(dst, src []byte, tr *Trace) {
	checkBlock(dst, src)
	nr := c.ks.Rounds()

	var s State
	copy(s[:], src)

	s.AddRoundKey(c.ks.roundKey(nr))
	tr.State(fmt.Sprintf("round 0 addRoundKey (k%d)", nr), s[:])

	for round := 1; round < nr; round++ {
		k := nr - round
		s.InvShiftRows()
		tr.State(fmt.Sprintf("round %d invShiftRows", round), s[:])
		s.InvSubBytes()
		tr.State(fmt.Sprintf("round %d invSubBytes", round), s[:])
		s.AddRoundKey(c.ks.roundKey(k))
		tr.State(fmt.Sprintf("round %d addRoundKey (k%d)", round, k), s[:])
		s.InvMixColumns()
		tr.State(fmt.Sprintf("round %d invMixColumns", round), s[:])
	}

	s.InvShiftRows()
	tr.State(fmt.Sprintf("round %d invShiftRows", nr), s[:])
	s.InvSubBytes()
	tr.State(fmt.Sprintf("round %d invSubBytes", nr), s[:])
	s.AddRoundKey(c.ks.roundKey(0))
	tr.State(fmt.Sprintf("round %d addRoundKey (k0)", nr), s[:])

	tr.State("end of block", s[:])
	copy(dst, s[:])
}

func checkBlock(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aestrace/subtle: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aestrace/subtle: output not full block")
	}
}
