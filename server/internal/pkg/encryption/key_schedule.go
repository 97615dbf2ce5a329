package encryption

import "fmt"

// Word is one 4-byte column of the expanded key.
type Word [4]byte

// KeySchedule holds round keys 0 through 10. Round key 0 is the cipher key.
type KeySchedule struct {
	words [keyScheduleWords]Word
	keys  [AES128Rounds + 1]State
}

// ExpandKey derives the AES-128 key schedule. Keys that are not exactly 16
// bytes are rejected; they are never padded.
func ExpandKey(key []byte) (*KeySchedule, error) {
	if len(key) != AES128KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKeyLength, AES128KeySize, len(key))
	}

	ks := &KeySchedule{}
	w := &ks.words

	for i := 0; i < 4; i++ {
		copy(w[i][:], key[i*4:(i+1)*4])
	}

	for i := 4; i < keyScheduleWords; i++ {
		temp := w[i-1]
		if i%4 == 0 {
			temp = subWord(rotWord(temp))
			temp[0] ^= rcon[i/4-1]
		}
		for j := 0; j < 4; j++ {
			w[i][j] = w[i-4][j] ^ temp[j]
		}
	}

	for round := 0; round <= AES128Rounds; round++ {
		for col := 0; col < 4; col++ {
			word := w[round*4+col]
			for row := 0; row < 4; row++ {
				ks.keys[round][row][col] = word[row]
			}
		}
	}

	return ks, nil
}

// RoundKey returns a copy of round key n.
func (ks *KeySchedule) RoundKey(round int) (State, error) {
	if round < 0 || round > AES128Rounds {
		return State{}, fmt.Errorf("%w: %d", ErrInvalidRound, round)
	}
	return ks.keys[round], nil
}

// RoundKeys returns copies of all 11 round keys in order.
func (ks *KeySchedule) RoundKeys() [AES128Rounds + 1]State {
	return ks.keys
}

// Words returns the 44 expanded key words.
func (ks *KeySchedule) Words() [keyScheduleWords]Word {
	return ks.words
}

func rotWord(w Word) Word {
	return Word{w[1], w[2], w[3], w[0]}
}

func subWord(w Word) Word {
	return Word{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}
