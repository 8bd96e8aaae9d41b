package subtle

// poly is the AES reduction polynomial x^8 + x^4 + x^3 + x + 1 without the
// x^8 term.
const poly = 0x1b

// xtime multiplies b by {02} in GF(2^8).
func xtime(b byte) byte {
	if b&0x80 != 0 {
		return b<<1 ^ poly
	}
	return b << 1
}

// The MixColumns coefficients, composed from xtime and XOR since
// multiplication distributes over addition in GF(2^8).

func mul2(b byte) byte  { return xtime(b) }
func mul3(b byte) byte  { return xtime(b) ^ b }
func mul4(b byte) byte  { return xtime(xtime(b)) }
func mul8(b byte) byte  { return xtime(xtime(xtime(b))) }
func mul9(b byte) byte  { return mul8(b) ^ b }
func mul11(b byte) byte { return mul8(b) ^ mul2(b) ^ b }
func mul13(b byte) byte { return mul8(b) ^ mul4(b) ^ b }
func mul14(b byte) byte { return mul8(b) ^ mul4(b) ^ mul2(b) }

// Mul multiplies a and b in GF(2^8) by shift-and-add over xtime.
func Mul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}

// rcon returns the round constant for core round r (r >= 1): xtime applied
// r-1 times to 0x01.
func rcon(r int) byte {
	c := byte(0x01)
	for i := 1; i < r; i++ {
		c = xtime(c)
	}
	return c
}
