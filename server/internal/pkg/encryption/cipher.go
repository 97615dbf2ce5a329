package encryption

// SymmetricCipher is the interface that block cipher engines implement
type SymmetricCipher interface {
	// Encrypt encrypts exactly one block with the given key
	Encrypt(key []byte, plaintext []byte) ([]byte, error)

	// Decrypt decrypts exactly one block with the given key
	Decrypt(key []byte, ciphertext []byte) ([]byte, error)

	// BlockSize returns the block size in bytes
	BlockSize() int

	// KeySize returns the required key size in bytes
	KeySize() int

	// Name returns the algorithm name
	Name() string
}

const (
	AES128BlockSize = 16 // 128-bit blocks
	AES128KeySize   = 16 // 128-bit key
	AES128Rounds    = 10

	// 4 words per round key, rounds 0..10
	keyScheduleWords = 4 * (AES128Rounds + 1)
)

// AES128 is a stateless AES-128 engine. The only thing it carries is an
// optional observer; every call builds its own state and key schedule.
type AES128 struct {
	observer StepObserver
}
