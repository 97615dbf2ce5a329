package padding

import (
	"errors"
	"fmt"
)

// ErrInvalidPadding is returned when padded data fails validation
var ErrInvalidPadding = errors.New("invalid padding")

// Padder interface defines the padding contract
type Padder interface {
	Pad(data []byte, blockSize int) []byte
	Unpad(data []byte) ([]byte, error)
	Name() string
}

// PKCS7Padding - PKCS#7 padding scheme
type PKCS7Padding struct {
	// BlockSize bounds the pad length accepted by Unpad. Zero means 16.
	BlockSize int
}

func (p *PKCS7Padding) Name() string {
	return "PKCS7"
}

func (p *PKCS7Padding) blockSize() int {
	if p.BlockSize <= 0 {
		return 16
	}
	return p.BlockSize
}

// Pad returns a new slice; data is never modified. Aligned input gets a
// full extra block.
func (p *PKCS7Padding) Pad(data []byte, blockSize int) []byte {
	paddingLen := blockSize - (len(data) % blockSize)
	padded := make([]byte, len(data)+paddingLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(paddingLen)
	}
	return padded
}

// Unpad checks every pad byte, not just the last one.
func (p *PKCS7Padding) Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidPadding)
	}

	paddingLen := int(data[len(data)-1])
	if paddingLen == 0 || paddingLen > len(data) || paddingLen > p.blockSize() {
		return nil, fmt.Errorf("%w: pad length %d", ErrInvalidPadding, paddingLen)
	}

	for i := len(data) - paddingLen; i < len(data); i++ {
		if data[i] != byte(paddingLen) {
			return nil, fmt.Errorf("%w: byte %d is 0x%02x, want 0x%02x", ErrInvalidPadding, i, data[i], paddingLen)
		}
	}

	return data[:len(data)-paddingLen], nil
}

// GetPadder returns a Padder implementation for the given padding name
func GetPadder(paddingName string) Padder {
	switch paddingName {
	case "PKCS7":
		return &PKCS7Padding{}
	default:
		return nil
	}
}
