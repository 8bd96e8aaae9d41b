package subtle

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Mode is a block chaining mode.
type Mode int

const (
	ECB Mode = iota
	CBC
)

var (
	// ErrBlockAlignment is returned when the input is empty or not a whole
	// number of blocks.
	ErrBlockAlignment = errors.New("aestrace/subtle: input is not a positive multiple of the block size")
	// ErrIVLength is returned for a CBC IV that is not exactly one block.
	ErrIVLength = errors.New("aestrace/subtle: IV length must equal block size")
	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("aestrace/subtle: unknown mode")
)

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "ecb" or "cbc" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ecb":
		return ECB, nil
	case "cbc":
		return CBC, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Driver runs a Cipher over a sequence of blocks in ECB or CBC mode.
//
// Blocks are processed in input order. When Workers > 1 and Mode is ECB the
// blocks are spread across goroutines; each block is traced separately and
// the traces are merged in input order, so the result is the same as the
// sequential path. CBC is always sequential.
type Driver struct {
	Cipher  *Cipher
	Mode    Mode
	Workers int
}

// Encrypt encrypts src. A nil iv means sixteen zero bytes; iv is ignored in ECB.
func (d Driver) Encrypt(iv, src []byte, tr *Trace) ([]byte, error) {
	chain, err := d.prepare(iv, src)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, len(src))

	if d.Mode == ECB {
		d.ecb(dst, src, tr, d.Cipher.EncryptTraced)
		return dst, nil
	}

	block := make([]byte, BlockSize)
	for i, n := 0, 1; i < len(src); i, n = i+BlockSize, n+1 {
		tr.State(fmt.Sprintf("block %d", n), src[i:i+BlockSize])
		for j := 0; j < BlockSize; j++ {
			block[j] = src[i+j] ^ chain[j]
		}
		tr.State(cbcLabel(n), block)

		out := dst[i : i+BlockSize]
		d.Cipher.EncryptTraced(out, block, tr)
		chain = out
	}
	return dst, nil
}

// Decrypt decrypts src. A nil iv means sixteen zero bytes; iv is ignored in ECB.
func (d Driver) Decrypt(iv, src []byte, tr *Trace) ([]byte, error) {
	chain, err := d.prepare(iv, src)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, len(src))

	if d.Mode == ECB {
		d.ecb(dst, src, tr, d.Cipher.DecryptTraced)
		return dst, nil
	}

	for i, n := 0, 1; i < len(src); i, n = i+BlockSize, n+1 {
		in := src[i : i+BlockSize]
		tr.State(fmt.Sprintf("block %d", n), in)

		out := dst[i : i+BlockSize]
		d.Cipher.DecryptTraced(out, in, tr)
		for j := range out {
			out[j] ^= chain[j]
		}
		tr.State(cbcLabel(n), out)

		// The next block chains on this block's ciphertext, not its plaintext.
		chain = in
	}
	return dst, nil
}

// EncryptBlocks encrypts src under c in mode, sequentially.
func EncryptBlocks(c *Cipher, mode Mode, iv, src []byte, tr *Trace) ([]byte, error) {
	return Driver{Cipher: c, Mode: mode}.Encrypt(iv, src, tr)
}

// DecryptBlocks decrypts src under c in mode, sequentially.
func DecryptBlocks(c *Cipher, mode Mode, iv, src []byte, tr *Trace) ([]byte, error) {
	return Driver{Cipher: c, Mode: mode}.Decrypt(iv, src, tr)
}

func (d Driver) prepare(iv, src []byte) ([]byte, error) {
	if len(src) == 0 || len(src)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBlockAlignment, len(src))
	}
	if d.Mode != ECB && d.Mode != CBC {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, d.Mode)
	}
	chain := make([]byte, BlockSize)
	if d.Mode == CBC && iv != nil {
		if len(iv) != BlockSize {
			return nil, fmt.Errorf("%w: got %d bytes", ErrIVLength, len(iv))
		}
		copy(chain, iv)
	}
	return chain, nil
}

type blockFunc func(dst, src []byte, tr *Trace)

func (d Driver) ecb(dst, src []byte, tr *Trace, fn blockFunc) {
	blocks := len(src) / BlockSize
	workers := d.Workers
	if workers > blocks {
		workers = blocks
	}

	if workers <= 1 {
		for i, n := 0, 1; i < len(src); i, n = i+BlockSize, n+1 {
			tr.State(fmt.Sprintf("block %d", n), src[i:i+BlockSize])
			fn(dst[i:i+BlockSize], src[i:i+BlockSize], tr)
		}
		return
	}

	var traces []*Trace
	if tr != nil {
		traces = make([]*Trace, blocks)
		for i := range traces {
			traces[i] = NewTrace()
		}
	}

	per := (blocks + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < blocks; start += per {
		end := start + per
		if end > blocks {
			end = blocks
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for b := start; b < end; b++ {
				var btr *Trace
				if traces != nil {
					btr = traces[b]
				}
				in := src[b*BlockSize : (b+1)*BlockSize]
				btr.State(fmt.Sprintf("block %d", b+1), in)
				fn(dst[b*BlockSize:(b+1)*BlockSize], in, btr)
			}
		}(start, end)
	}
	wg.Wait()

	for _, btr := range traces {
		tr.Append(btr)
	}
}

func cbcLabel(n int) string {
	if n == 1 {
		return "CBC xor (IV)"
	}
	return "CBC xor (IV = prevCipher)"
}
