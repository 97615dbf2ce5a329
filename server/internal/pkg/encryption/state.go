package encryption

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// State is one 16-byte block laid out as a 4x4 matrix, indexed [row][col].
// Bytes are loaded column-major: byte i lives at row i%4, column i/4.
type State [4][4]byte

// stateIndex returns the byte offset of (row, col) in the serialised block.
func stateIndex(row, col int) int {
	return col*4 + row
}

// StateFromBytes loads a 16-byte block into a new State.
func StateFromBytes(block []byte) (State, error) {
	var s State
	if len(block) != AES128BlockSize {
		return s, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidBlockSize, AES128BlockSize, len(block))
	}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			s[row][col] = block[stateIndex(row, col)]
		}
	}
	return s, nil
}

// Bytes serialises the state back to a 16-byte block, column-major.
func (s *State) Bytes() []byte {
	out := make([]byte, AES128BlockSize)
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[stateIndex(row, col)] = s[row][col]
		}
	}
	return out
}

// At returns the byte at serialised offset i.
func (s *State) At(i int) byte {
	return s[i%4][i/4]
}

// Hex returns the serialised block as uppercase hex.
func (s *State) Hex() string {
	return strings.ToUpper(hex.EncodeToString(s.Bytes()))
}

// String renders the matrix row by row.
func (s State) String() string {
	var b strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%02X %02X %02X %02X", s[row][0], s[row][1], s[row][2], s[row][3])
	}
	return b.String()
}
