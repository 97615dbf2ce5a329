package encryption

// GFMul multiplies a and b in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1.
func GFMul(a, b byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			result ^= a
		}
		highBit := a & 0x80
		a <<= 1
		if highBit != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return result
}

