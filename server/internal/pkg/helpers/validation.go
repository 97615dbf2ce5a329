package helpers

import (
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"

	"aesviz/server/internal/pkg/encryption"
)

var ErrEmptyInput = errors.New("input and key must both be provided")

// ValidateKeyText converts a key typed into the UI to key bytes. The key
// must be exactly 16 bytes once UTF-8 encoded.
func ValidateKeyText(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyInput
	}
	if len(key) != encryption.AES128KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", encryption.ErrInvalidKeyLength, encryption.AES128KeySize, len(key))
	}
	return []byte(key), nil
}

// ValidateInput rejects an empty plaintext or ciphertext field
func ValidateInput(input string) error {
	if input == "" {
		return ErrEmptyInput
	}
	return nil
}

// KeyFingerprint identifies a key in logs and responses without revealing it
func KeyFingerprint(key []byte) string {
	sum := sha3.Sum256(key)
	return hex.EncodeToString(sum[:4])
}
