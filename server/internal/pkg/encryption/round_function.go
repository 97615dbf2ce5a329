package encryption

// SubBytes replaces every byte with its S-box entry.
func SubBytes(s *State) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			s[row][col] = sbox[s[row][col]]
		}
	}
}

// InvSubBytes replaces every byte with its inverse S-box entry.
func InvSubBytes(s *State) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			s[row][col] = invSbox[s[row][col]]
		}
	}
}

// ShiftRows rotates row r left by r positions. Row 0 is untouched.
func ShiftRows(s *State) {
	for row := 1; row < 4; row++ {
		rotateLeft(&s[row], row)
	}
}

// InvShiftRows rotates row r right by r positions.
func InvShiftRows(s *State) {
	for row := 1; row < 4; row++ {
		rotateLeft(&s[row], 4-row)
	}
}

func rotateLeft(row *[4]byte, n int) {
	r := *row
	for col := 0; col < 4; col++ {
		row[col] = r[(col+n)%4]
	}
}

// MixColumns multiplies each column by the fixed matrix
// [02 03 01 01; 01 02 03 01; 01 01 02 03; 03 01 01 02].
func MixColumns(s *State) {
	for col := 0; col < 4; col++ {
		a0, a1, a2, a3 := s[0][col], s[1][col], s[2][col], s[3][col]

		s[0][col] = GFMul(0x02, a0) ^ GFMul(0x03, a1) ^ a2 ^ a3
		s[1][col] = a0 ^ GFMul(0x02, a1) ^ GFMul(0x03, a2) ^ a3
		s[2][col] = a0 ^ a1 ^ GFMul(0x02, a2) ^ GFMul(0x03, a3)
		s[3][col] = GFMul(0x03, a0) ^ a1 ^ a2 ^ GFMul(0x02, a3)
	}
}

// InvMixColumns multiplies each column by the inverse matrix
// [0e 0b 0d 09; 09 0e 0b 0d; 0d 09 0e 0b; 0b 0d 09 0e].
func InvMixColumns(s *State) {
	for col := 0; col < 4; col++ {
		a0, a1, a2, a3 := s[0][col], s[1][col], s[2][col], s[3][col]

		s[0][col] = GFMul(0x0e, a0) ^ GFMul(0x0b, a1) ^ GFMul(0x0d, a2) ^ GFMul(0x09, a3)
		s[1][col] = GFMul(0x09, a0) ^ GFMul(0x0e, a1) ^ GFMul(0x0b, a2) ^ GFMul(0x0d, a3)
		s[2][col] = GFMul(0x0d, a0) ^ GFMul(0x09, a1) ^ GFMul(0x0e, a2) ^ GFMul(0x0b, a3)
		s[3][col] = GFMul(0x0b, a0) ^ GFMul(0x0d, a1) ^ GFMul(0x09, a2) ^ GFMul(0x0e, a3)
	}
}

// AddRoundKey XORs the state with a round key. Applying it twice with the
// same key restores the state.
func AddRoundKey(s *State, roundKey State) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			s[row][col] ^= roundKey[row][col]
		}
	}
}
