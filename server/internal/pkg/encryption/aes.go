package encryption

import (
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"aesviz/server/internal/pkg/encryption/padding"
)

// NewAES128 creates an AES-128 engine
func NewAES128(opts ...Option) *AES128 {
	a := &AES128{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BlockSize returns the block size of AES-128
func (a *AES128) BlockSize() int {
	return AES128BlockSize
}

// KeySize returns the key size of AES-128
func (a *AES128) KeySize() int {
	return AES128KeySize
}

// Name returns the cipher name
func (a *AES128) Name() string {
	return "AES-128"
}

// Encrypt encrypts exactly one 16-byte block without padding
func (a *AES128) Encrypt(key []byte, plaintext []byte) ([]byte, error) {
	ks, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	state, err := StateFromBytes(plaintext)
	if err != nil {
		return nil, err
	}

	r := &run{op: OpEncrypt, observer: a.observer, state: state, phase: PhaseIdle}
	r.encrypt(ks)
	return r.state.Bytes(), nil
}

// Decrypt decrypts exactly one 16-byte block without removing padding
func (a *AES128) Decrypt(key []byte, ciphertext []byte) ([]byte, error) {
	ks, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) != AES128BlockSize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidCiphertextFormat, AES128BlockSize, len(ciphertext))
	}
	state, err := StateFromBytes(ciphertext)
	if err != nil {
		return nil, err
	}

	r := &run{op: OpDecrypt, observer: a.observer, state: state, phase: PhaseIdle}
	r.decrypt(ks)
	return r.state.Bytes(), nil
}

func (r *run) encrypt(ks *KeySchedule) {
	r.emit(StepLoad)

	r.enter(PhaseInitialRound, 0)
	AddRoundKey(&r.state, ks.keys[0])
	r.emit(StepAddRoundKey)

	for round := 1; round < AES128Rounds; round++ {
		r.enter(PhaseMainRound, round)
		SubBytes(&r.state)
		r.emit(StepSubBytes)
		ShiftRows(&r.state)
		r.emit(StepShiftRows)
		MixColumns(&r.state)
		r.emit(StepMixColumns)
		AddRoundKey(&r.state, ks.keys[round])
		r.emit(StepAddRoundKey)
	}

	r.enter(PhaseFinalRound, AES128Rounds)
	SubBytes(&r.state)
	r.emit(StepSubBytes)
	ShiftRows(&r.state)
	r.emit(StepShiftRows)
	AddRoundKey(&r.state, ks.keys[AES128Rounds])
	r.emit(StepAddRoundKey)

	r.enter(PhaseDone, AES128Rounds)
	r.emit(StepDone)
}

func (r *run) decrypt(ks *KeySchedule) {
	r.round = AES128Rounds
	r.emit(StepLoad)

	r.enter(PhaseInitialRound, AES128Rounds)
	AddRoundKey(&r.state, ks.keys[AES128Rounds])
	r.emit(StepAddRoundKey)

	for round := AES128Rounds - 1; round > 0; round-- {
		r.enter(PhaseMainRound, round)
		InvShiftRows(&r.state)
		r.emit(StepInvShiftRows)
		InvSubBytes(&r.state)
		r.emit(StepInvSubBytes)
		AddRoundKey(&r.state, ks.keys[round])
		r.emit(StepAddRoundKey)
		InvMixColumns(&r.state)
		r.emit(StepInvMixColumns)
	}

	r.enter(PhaseFinalRound, 0)
	InvShiftRows(&r.state)
	r.emit(StepInvShiftRows)
	InvSubBytes(&r.state)
	r.emit(StepInvSubBytes)
	AddRoundKey(&r.state, ks.keys[0])
	r.emit(StepAddRoundKey)

	r.enter(PhaseDone, 0)
	r.emit(StepDone)
}

// EncryptBlock pads plaintext with PKCS#7 and encrypts the single resulting
// block. Plaintext must be at most 15 bytes so the padded input is one block.
func (a *AES128) EncryptBlock(plaintext, key []byte) ([]byte, error) {
	if len(key) != AES128KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKeyLength, AES128KeySize, len(key))
	}
	if len(plaintext) >= AES128BlockSize {
		return nil, fmt.Errorf("%w: %d bytes, at most %d allowed", ErrPlaintextTooLong, len(plaintext), AES128BlockSize-1)
	}

	padder := &padding.PKCS7Padding{BlockSize: AES128BlockSize}
	padded := padder.Pad(plaintext, AES128BlockSize)
	return a.Encrypt(key, padded)
}

// DecryptBlock decrypts one block and strips its PKCS#7 padding
func (a *AES128) DecryptBlock(ciphertext, key []byte) ([]byte, error) {
	block, err := a.Decrypt(key, ciphertext)
	if err != nil {
		return nil, err
	}

	padder := &padding.PKCS7Padding{BlockSize: AES128BlockSize}
	return padder.Unpad(block)
}

// EncryptBlock is the package-level form of (*AES128).EncryptBlock
func EncryptBlock(plaintext, key []byte) ([]byte, error) {
	return NewAES128().EncryptBlock(plaintext, key)
}

// DecryptBlock is the package-level form of (*AES128).DecryptBlock
func DecryptBlock(ciphertext, key []byte) ([]byte, error) {
	return NewAES128().DecryptBlock(ciphertext, key)
}

// EncryptBlockHex encrypts plaintext and returns uppercase hex ciphertext
func (a *AES128) EncryptBlockHex(plaintext, key []byte) (string, error) {
	ct, err := a.EncryptBlock(plaintext, key)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(ct)), nil
}

// DecryptBlockHex accepts 32 hex characters in any case; whitespace is ignored
func (a *AES128) DecryptBlockHex(ciphertextHex string, key []byte) ([]byte, error) {
	ct, err := ParseCiphertextHex(ciphertextHex)
	if err != nil {
		return nil, err
	}
	return a.DecryptBlock(ct, key)
}

// ParseCiphertextHex decodes one hex-encoded block
func ParseCiphertextHex(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if len(cleaned) != 2*AES128BlockSize {
		return nil, fmt.Errorf("%w: need %d hex characters, got %d", ErrInvalidCiphertextFormat, 2*AES128BlockSize, len(cleaned))
	}

	ct, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCiphertextFormat, err)
	}
	return ct, nil
}
