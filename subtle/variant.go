package subtle

import "strconv"

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// Variant selects AES-128, AES-192 or AES-256. It is chosen once from the key
// length and carries the word count Nk and round count Nr.
type Variant int

const (
	AES128 Variant = iota
	AES192
	AES256
)

// KeySizeError is returned for keys that are not 16, 24 or 32 bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "aestrace/subtle: invalid key size " + strconv.Itoa(int(k))
}

// VariantForKeySize maps a key length in bytes to its variant.
func VariantForKeySize(n int) (Variant, error) {
	switch n {
	case 16:
		return AES128, nil
	case 24:
		return AES192, nil
	case 32:
		return AES256, nil
	}
	return 0, KeySizeError(n)
}

// Nk is the key length in 32-bit words.
func (v Variant) Nk() int {
	switch v {
	case AES192:
		return 6
	case AES256:
		return 8
	}
	return 4
}

// Nr is the number of rounds.
func (v Variant) Nr() int { return v.Nk() + 6 }

// KeySize is the key length in bytes.
func (v Variant) KeySize() int { return 4 * v.Nk() }

// ExpandedSize is the length of the full key schedule in bytes.
func (v Variant) ExpandedSize() int { return BlockSize * (v.Nr() + 1) }

func (v Variant) String() string {
	switch v {
	case AES128:
		return "AES-128"
	case AES192:
		return "AES-192"
	case AES256:
		return "AES-256"
	}
	return "Variant(" + strconv.Itoa(int(v)) + ")"
}
