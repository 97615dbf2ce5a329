package visualizer

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"aesviz/server/internal/pkg/encryption"
	"aesviz/server/internal/pkg/helpers"
	"aesviz/server/internal/protocol"
)

const testKey = "0123456789ABCDEF"

func newTestService() *Service {
	return NewService(helpers.NewLogger("VisualizerTest"))
}

func TestEncryptDecryptText(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	enc, err := svc.EncryptText(ctx, "Hello, AES!", testKey)
	if err != nil {
		t.Fatalf("EncryptText failed: %v", err)
	}
	if enc.Operation != protocol.Encrypt || len(enc.Output) != 32 || enc.Output != strings.ToUpper(enc.Output) {
		t.Fatalf("unexpected encrypt trace: %+v", enc)
	}
	if len(enc.Steps) != 42 || len(enc.RoundKeys) != 11 {
		t.Fatalf("got %d steps and %d round keys", len(enc.Steps), len(enc.RoundKeys))
	}
	if enc.Steps[len(enc.Steps)-1].State != enc.Output {
		t.Fatal("last step state does not match the ciphertext")
	}

	dec, err := svc.DecryptHex(ctx, strings.ToLower(enc.Output), testKey)
	if err != nil {
		t.Fatalf("DecryptHex failed: %v", err)
	}
	if dec.Output != "Hello, AES!" || !dec.ValidUTF8 {
		t.Fatalf("unexpected decrypt trace: %+v", dec)
	}
	if dec.Input != enc.Output {
		t.Fatalf("decrypt input %s, want normalised %s", dec.Input, enc.Output)
	}
	if dec.KeyID != enc.KeyID {
		t.Fatal("same key produced different key ids")
	}
}

func TestRoundKeyZeroIsKey(t *testing.T) {
	resp, err := newTestService().KeySchedule(context.Background(), testKey)
	if err != nil {
		t.Fatalf("KeySchedule failed: %v", err)
	}
	if len(resp.RoundKeys) != 11 {
		t.Fatalf("got %d round keys", len(resp.RoundKeys))
	}
	if want := strings.ToUpper(hex.EncodeToString([]byte(testKey))); resp.RoundKeys[0] != want {
		t.Fatalf("round key 0 = %s, want %s", resp.RoundKeys[0], want)
	}
}

func TestHighlightedCells(t *testing.T) {
	trace, err := newTestService().EncryptText(context.Background(), "highlight", testKey)
	if err != nil {
		t.Fatalf("EncryptText failed: %v", err)
	}

	if trace.Steps[0].Kind != string(encryption.StepLoad) || trace.Steps[0].Highlight != nil {
		t.Fatalf("load step should not highlight cells: %+v", trace.Steps[0])
	}

	for _, step := range trace.Steps {
		if step.Kind != string(encryption.StepShiftRows) {
			continue
		}
		for _, cell := range step.Highlight {
			if cell%4 == 0 {
				t.Fatalf("ShiftRows highlighted row 0 cell %d", cell)
			}
		}
	}
}

func TestRejectedInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"short key", func() error { _, err := svc.EncryptText(ctx, "hi", "short"); return err }, encryption.ErrInvalidKeyLength},
		{"empty plaintext", func() error { _, err := svc.EncryptText(ctx, "", testKey); return err }, helpers.ErrEmptyInput},
		{"long plaintext", func() error { _, err := svc.EncryptText(ctx, "sixteen byte msg", testKey); return err }, encryption.ErrPlaintextTooLong},
		{"non-hex ciphertext", func() error {
			_, err := svc.DecryptHex(ctx, strings.Repeat("G", 32), testKey)
			return err
		}, encryption.ErrInvalidCiphertextFormat},
		{"unknown operation", func() error {
			_, err := svc.Run(ctx, &protocol.VisualizeRequest{Operation: "HASH", Input: "x", Key: testKey})
			return err
		}, ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWrongKeyFailsPadding(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// A ciphertext whose decryption under the zero key ends in 0x00
	block := make([]byte, 16)
	ct, err := encryption.NewAES128().Encrypt([]byte("0000000000000000"), block)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = svc.DecryptHex(ctx, hex.EncodeToString(ct), "0000000000000000")
	if !errors.Is(err, encryption.ErrInvalidPadding) {
		t.Fatalf("got %v, want ErrInvalidPadding", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestService().EncryptText(ctx, "hi", testKey); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestRunDispatch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	enc, err := svc.Run(ctx, &protocol.VisualizeRequest{Operation: protocol.Encrypt, Input: "dispatch", Key: testKey})
	if err != nil {
		t.Fatalf("Run(ENCRYPT) failed: %v", err)
	}
	dec, err := svc.Run(ctx, &protocol.VisualizeRequest{Operation: protocol.Decrypt, Input: enc.Output, Key: testKey})
	if err != nil {
		t.Fatalf("Run(DECRYPT) failed: %v", err)
	}
	if dec.Output != "dispatch" {
		t.Fatalf("got %q", dec.Output)
	}
}
