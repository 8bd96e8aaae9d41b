package subtle

import "encoding/hex"

// State is one 16-byte block viewed as a 4x4 column-major matrix:
// byte i sits in row i%4, column i/4.
type State [BlockSize]byte

// SubBytes replaces every byte with its S-box entry.
func (s *State) SubBytes() {
	for i := range s {
		s[i] = sbox[s[i]]
	}
}

// InvSubBytes replaces every byte with its inverse S-box entry.
func (s *State) InvSubBytes() {
	for i := range s {
		s[i] = invSbox[s[i]]
	}
}

// ShiftRows rotates row r left by r positions.
func (s *State) ShiftRows() {
	t := *s
	for c := 0; c < 4; c++ {
		for r := 1; r < 4; r++ {
			s[4*c+r] = t[4*((c+r)%4)+r]
		}
	}
}

// InvShiftRows rotates row r right by r positions.
func (s *State) InvShiftRows() {
	t := *s
	for c := 0; c < 4; c++ {
		for r := 1; r < 4; r++ {
			s[4*((c+r)%4)+r] = t[4*c+r]
		}
	}
}

// MixColumns multiplies every column by the fixed matrix
// [2 3 1 1; 1 2 3 1; 1 1 2 3; 3 1 1 2].
func (s *State) MixColumns() {
	for c := 0; c < 4; c++ {
		i := 4 * c
		a0, a1, a2, a3 := s[i], s[i+1], s[i+2], s[i+3]
		s[i] = mul2(a0) ^ mul3(a1) ^ a2 ^ a3
		s[i+1] = a0 ^ mul2(a1) ^ mul3(a2) ^ a3
		s[i+2] = a0 ^ a1 ^ mul2(a2) ^ mul3(a3)
		s[i+3] = mul3(a0) ^ a1 ^ a2 ^ mul2(a3)
	}
}

// InvMixColumns multiplies every column by the inverse matrix
// [14 11 13 9; 9 14 11 13; 13 9 14 11; 11 13 9 14].
func (s *State) InvMixColumns() {
	for c := 0; c < 4; c++ {
		i := 4 * c
		a0, a1, a2, a3 := s[i], s[i+1], s[i+2], s[i+3]
		s[i] = mul14(a0) ^ mul11(a1) ^ mul13(a2) ^ mul9(a3)
		s[i+1] = mul9(a0) ^ mul14(a1) ^ mul11(a2) ^ mul13(a3)
		s[i+2] = mul13(a0) ^ mul9(a1) ^ mul14(a2) ^ mul11(a3)
		s[i+3] = mul11(a0) ^ mul13(a1) ^ mul9(a2) ^ mul14(a3)
	}
}

// AddRoundKey XORs the state with a 16-byte round key.
func (s *State) AddRoundKey(rk []byte) {
	_ = rk[BlockSize-1]
	for i := range s {
		s[i] ^= rk[i]
	}
}

// String returns the state as lowercase hex in byte order.
func (s *State) String() string {
	return hex.EncodeToString(s[:])
}
