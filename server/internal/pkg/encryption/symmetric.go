package encryption

import (
	"errors"

	"aesviz/server/internal/pkg/encryption/padding"
)

var (
	ErrInvalidKeyLength        = errors.New("invalid key length")
	ErrInvalidCiphertextFormat = errors.New("invalid ciphertext format")
	ErrInvalidPadding          = padding.ErrInvalidPadding
	ErrInvalidBlockSize        = errors.New("invalid block size")
	ErrPlaintextTooLong        = errors.New("plaintext does not fit in a single block")
	ErrInvalidRound            = errors.New("invalid round index")
)

// Error kinds reported across the wire
const (
	KindInvalidKeyLength        = "InvalidKeyLength"
	KindInvalidCiphertextFormat = "InvalidCiphertextFormat"
	KindInvalidPadding          = "InvalidPadding"
	KindInvalidInput            = "InvalidInput"
)

// ErrorKind maps an engine error to its wire kind. Errors that do not come
// from the engine are reported as KindInvalidInput.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidKeyLength):
		return KindInvalidKeyLength
	case errors.Is(err, ErrInvalidCiphertextFormat):
		return KindInvalidCiphertextFormat
	case errors.Is(err, ErrInvalidPadding):
		return KindInvalidPadding
	default:
		return KindInvalidInput
	}
}
