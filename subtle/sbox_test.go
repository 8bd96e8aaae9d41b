package subtle

import "testing"

// Check that S-boxes are inverses of each other.
func TestSboxes(t *testing.T) {
	for i := 0; i < 256; i++ {
		if j := invSbox[sbox[i]]; j != byte(i) {
			t.Errorf("invSbox[sbox[%#x]] = %#x", i, j)
		}
		if j := sbox[invSbox[i]]; j != byte(i) {
			t.Errorf("sbox[invSbox[%#x]] = %#x", i, j)
		}
	}
}

func TestSboxSpotValues(t *testing.T) {
	tests := []struct {
		in, out byte
	}{
		{0x00, 0x63},
		{0x53, 0xed},
		{0xff, 0x16},
		{0x19, 0xd4},
	}
	for _, tt := range tests {
		if got := SubByte(tt.in); got != tt.out {
			t.Errorf("SubByte(%#02x) = %#02x, want %#02x", tt.in, got, tt.out)
		}
		if got := InvSubByte(tt.out); got != tt.in {
			t.Errorf("InvSubByte(%#02x) = %#02x, want %#02x", tt.out, got, tt.in)
		}
	}
}
