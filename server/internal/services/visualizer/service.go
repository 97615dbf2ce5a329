package visualizer

import (
	"context"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"aesviz/server/internal/pkg/encryption"
	"aesviz/server/internal/pkg/helpers"
	"aesviz/server/internal/protocol"
)

// Service runs the cipher engine for the UI and records every step
type Service struct {
	logger *helpers.Logger
}

func NewService(logger *helpers.Logger) *Service {
	if logger == nil {
		logger = helpers.NewLogger("Visualizer")
	}
	return &Service{logger: logger}
}

// EncryptText encrypts UTF-8 text under a 16-character key
func (s *Service) EncryptText(ctx context.Context, plaintext, key string) (*protocol.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := helpers.ValidateInput(plaintext); err != nil {
		return nil, err
	}
	keyBytes, err := helpers.ValidateKeyText(key)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rec := newRecorder(ctx)
	engine := encryption.NewAES128(encryption.WithObserver(rec))

	ciphertext, err := engine.EncryptBlock([]byte(plaintext), keyBytes)
	if err != nil {
		s.logger.Warn("Encrypt rejected", helpers.KeyFingerprint(keyBytes), err)
		return nil, err
	}
	if err := rec.err(); err != nil {
		return nil, err
	}

	roundKeys, err := roundKeysHex(keyBytes)
	if err != nil {
		return nil, err
	}

	out := strings.ToUpper(hex.EncodeToString(ciphertext))
	trace := &protocol.Trace{
		Operation:  protocol.Encrypt,
		Input:      plaintext,
		Output:     out,
		OutputHex:  out,
		ValidUTF8:  true,
		RoundKeys:  roundKeys,
		KeyID:      helpers.KeyFingerprint(keyBytes),
		Steps:      rec.steps,
		DurationUS: time.Since(start).Microseconds(),
	}
	s.logger.Debug("Encrypted", trace.KeyID, len(trace.Steps))
	return trace, nil
}

// DecryptHex decrypts one hex-encoded block and decodes the result as text
func (s *Service) DecryptHex(ctx context.Context, ciphertextHex, key string) (*protocol.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := helpers.ValidateInput(ciphertextHex); err != nil {
		return nil, err
	}
	keyBytes, err := helpers.ValidateKeyText(key)
	if err != nil {
		return nil, err
	}
	ciphertext, err := encryption.ParseCiphertextHex(ciphertextHex)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rec := newRecorder(ctx)
	engine := encryption.NewAES128(encryption.WithObserver(rec))

	plaintext, err := engine.DecryptBlock(ciphertext, keyBytes)
	if err != nil {
		s.logger.Warn("Decrypt rejected", helpers.KeyFingerprint(keyBytes), err)
		return nil, err
	}
	if err := rec.err(); err != nil {
		return nil, err
	}

	roundKeys, err := roundKeysHex(keyBytes)
	if err != nil {
		return nil, err
	}

	trace := &protocol.Trace{
		Operation:  protocol.Decrypt,
		Input:      strings.ToUpper(hex.EncodeToString(ciphertext)),
		Output:     string(plaintext),
		OutputHex:  strings.ToUpper(hex.EncodeToString(plaintext)),
		ValidUTF8:  utf8.Valid(plaintext),
		RoundKeys:  roundKeys,
		KeyID:      helpers.KeyFingerprint(keyBytes),
		Steps:      rec.steps,
		DurationUS: time.Since(start).Microseconds(),
	}
	s.logger.Debug("Decrypted", trace.KeyID, len(trace.Steps))
	return trace, nil
}

// KeySchedule returns round keys 0..10 as uppercase hex
func (s *Service) KeySchedule(ctx context.Context, key string) (*protocol.KeyScheduleResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keyBytes, err := helpers.ValidateKeyText(key)
	if err != nil {
		return nil, err
	}
	roundKeys, err := roundKeysHex(keyBytes)
	if err != nil {
		return nil, err
	}
	return &protocol.KeyScheduleResponse{
		KeyID:     helpers.KeyFingerprint(keyBytes),
		RoundKeys: roundKeys,
	}, nil
}

// Run dispatches a visualize request to the matching pipeline
func (s *Service) Run(ctx context.Context, req *protocol.VisualizeRequest) (*protocol.Trace, error) {
	switch req.Operation {
	case protocol.Encrypt:
		return s.EncryptText(ctx, req.Input, req.Key)
	case protocol.Decrypt:
		return s.DecryptHex(ctx, req.Input, req.Key)
	default:
		return nil, ErrUnknownOperation
	}
}

func roundKeysHex(key []byte) ([]string, error) {
	ks, err := encryption.ExpandKey(key)
	if err != nil {
		return nil, err
	}
	keys := ks.RoundKeys()
	out := make([]string, len(keys))
	for i := range keys {
		out[i] = keys[i].Hex()
	}
	return out, nil
}
