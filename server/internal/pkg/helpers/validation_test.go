package helpers

import (
	"errors"
	"testing"

	"aesviz/server/internal/pkg/encryption"
)

func TestValidateKeyText(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"sixteen ascii chars", "0123456789ABCDEF", nil},
		{"empty", "", ErrEmptyInput},
		{"fifteen chars", "0123456789ABCDE", encryption.ErrInvalidKeyLength},
		{"seventeen chars", "0123456789ABCDEFG", encryption.ErrInvalidKeyLength},
		// 15 runes, 16 bytes: length is measured in encoded bytes
		{"multibyte rune", "é0123456789ABCD", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ValidateKeyText(tt.key)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(key) != tt.key {
				t.Fatalf("key bytes %q, want %q", key, tt.key)
			}
		})
	}
}

func TestValidateInput(t *testing.T) {
	if err := ValidateInput(""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("got %v, want ErrEmptyInput", err)
	}
	if err := ValidateInput("x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKeyFingerprint(t *testing.T) {
	a := KeyFingerprint([]byte("0123456789ABCDEF"))
	b := KeyFingerprint([]byte("0123456789ABCDEF"))
	c := KeyFingerprint([]byte("0123456789ABCDEX"))

	if len(a) != 8 {
		t.Fatalf("fingerprint %q should be 8 hex chars", a)
	}
	if a != b {
		t.Fatal("fingerprint is not deterministic")
	}
	if a == c {
		t.Fatal("different keys share a fingerprint")
	}
}
