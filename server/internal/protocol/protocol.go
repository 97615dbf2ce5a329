package protocol

import (
	"time"
)

// Operation type for the two pipelines
type Operation string

const (
	Encrypt Operation = "ENCRYPT"
	Decrypt Operation = "DECRYPT"
)

// WebSocket deadlines
const (
	ReadTimeout  = 60 * time.Second
	WriteTimeout = 10 * time.Second
	PingInterval = 30 * time.Second
)

// WebSocket event types
const (
	EventStep  = "step"
	EventDone  = "done"
	EventError = "error"
)

// TraceStep is one primitive application, as the UI animates it
type TraceStep struct {
	Index     int    `json:"index"`
	Phase     string `json:"phase"`
	Round     int    `json:"round"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	State     string `json:"state"` // 32 hex chars, column-major
	Highlight []int  `json:"highlight,omitempty"`
}

// Trace is the complete record of one encrypt or decrypt run
type Trace struct {
	Operation  Operation   `json:"operation"`
	Input      string      `json:"input"`
	Output     string      `json:"output"`
	OutputHex  string      `json:"output_hex"`
	ValidUTF8  bool        `json:"valid_utf8"`
	RoundKeys  []string    `json:"round_keys"`
	KeyID      string      `json:"key_id"`
	Steps      []TraceStep `json:"steps"`
	DurationUS int64       `json:"duration_us"`
}

// VisualizeRequest is what a WebSocket client sends to start an animation
type VisualizeRequest struct {
	Operation   Operation `json:"operation"`
	Input       string    `json:"input"`
	Key         string    `json:"key"`
	StepDelayMS int       `json:"step_delay_ms"`
}

// EncryptRequest is the body of POST /api/aes/encrypt
type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
	Key       string `json:"key"`
}

// DecryptRequest is the body of POST /api/aes/decrypt
type DecryptRequest struct {
	Ciphertext string `json:"ciphertext"`
	Key        string `json:"key"`
}

// KeyScheduleRequest is the body of POST /api/aes/key-schedule
type KeyScheduleRequest struct {
	Key string `json:"key"`
}

// KeyScheduleResponse lists round keys 0..10 as hex
type KeyScheduleResponse struct {
	KeyID     string   `json:"key_id"`
	RoundKeys []string `json:"round_keys"`
}

// ErrorResponse is returned for rejected input
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// WebSocketEvent represents a real-time event sent to a client
type WebSocketEvent struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// NewEvent stamps an event with the current time
func NewEvent(eventType string, data interface{}) *WebSocketEvent {
	return &WebSocketEvent{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}
