package subtle

import "fmt"

// KeySchedule holds the expanded round keys for one AES key.
// It is read-only after ExpandKey returns and safe for concurrent use.
type KeySchedule struct {
	variant  Variant
	expanded []byte
}

// ExpandKey runs the AES key expansion on key and records every step in tr,
// which may be nil.
//
// For each word position i from Nk on, the previous word is taken as temp.
// Every Nk words temp goes through the core (RotWord, SubWord, Rcon); with a
// 256-bit key the word at i%Nk == 4 gets an extra SubWord. The new word is
// temp XOR the word Nk positions back.
func ExpandKey(key []byte, tr *Trace) (*KeySchedule, error) {
	v, err := VariantForKeySize(len(key))
	if err != nil {
		return nil, err
	}

	nk := v.Nk()
	words := v.ExpandedSize() / 4
	ek := make([]byte, v.ExpandedSize())
	copy(ek, key)

	round := 0
	for i := nk; i < words; i++ {
		var temp [4]byte
		copy(temp[:], ek[4*(i-1):4*i])

		core := i%nk == 0
		switch {
		case core:
			round++
			expansionCore(&temp, round, tr)
		case v == AES256 && i%nk == 4:
			subWord(&temp)
			tr.Word("SubWord (AES-256)", temp[:])
		}

		prev := ek[4*(i-nk) : 4*(i-nk)+4]
		w := ek[4*i : 4*i+4]
		for j := range w {
			w[j] = temp[j] ^ prev[j]
		}

		if core {
			tr.Word(fmt.Sprintf("XOR with temp2 (w%d)", i), w)
		} else {
			tr.Word(fmt.Sprintf("temp1 XOR temp2 (w%d)", i), w)
		}
	}

	return &KeySchedule{variant: v, expanded: ek}, nil
}

func expansionCore(w *[4]byte, round int, tr *Trace) {
	tr.Notef("CORE round: %d", round)
	tr.Word("input", w[:])

	rotWord(w)
	tr.Word("Rotate Left", w[:])

	subWord(w)
	tr.Word("SubBytes", w[:])

	w[0] ^= rcon(round)
	tr.Word("AddRoundConstant", w[:])
}

// rotWord turns (b0,b1,b2,b3) into (b1,b2,b3,b0).
func rotWord(w *[4]byte) {
	w[0], w[1], w[2], w[3] = w[1], w[2], w[3], w[0]
}

func subWord(w *[4]byte) {
	for i := range w {
		w[i] = sbox[w[i]]
	}
}

// Variant returns the AES variant selected by the key length.
func (ks *KeySchedule) Variant() Variant { return ks.variant }

// Rounds returns Nr.
func (ks *KeySchedule) Rounds() int { return ks.variant.Nr() }

// Expanded returns a copy of the whole expanded key.
func (ks *KeySchedule) Expanded() []byte {
	out := make([]byte, len(ks.expanded))
	copy(out, ks.expanded)
	return out
}

// RoundKey returns a copy of round key i, 0 <= i <= Nr.
func (ks *KeySchedule) RoundKey(i int) []byte {
	out := make([]byte, BlockSize)
	copy(out, ks.roundKey(i))
	return out
}

// RoundKeys returns copies of all Nr+1 round keys in schedule order.
func (ks *KeySchedule) RoundKeys() [][]byte {
	keys := make([][]byte, ks.Rounds()+1)
	for i := range keys {
		keys[i] = ks.RoundKey(i)
	}
	return keys
}

func (ks *KeySchedule) roundKey(i int) []byte {
	return ks.expanded[BlockSize*i : BlockSize*(i+1)]
}
