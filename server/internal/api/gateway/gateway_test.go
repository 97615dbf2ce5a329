package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"aesviz/server/internal/config"
	"aesviz/server/internal/pkg/encryption"
	"aesviz/server/internal/pkg/helpers"
	"aesviz/server/internal/protocol"
	"aesviz/server/internal/services/visualizer"
)

const testKey = "0123456789ABCDEF"

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{MaxRequestBytes: 4096},
		Visualizer: config.VisualizerConfig{
			StepDelay:    time.Millisecond,
			MaxStepDelay: 5 * time.Millisecond,
		},
	}
	logger := helpers.NewLogger("GatewayTest")
	s := New(cfg, visualizer.NewService(logger), logger)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Shutdown(context.Background())
	})
	return s, ts
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("CORS header missing")
	}
}

func TestEncryptDecryptEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/aes/encrypt", protocol.EncryptRequest{Plaintext: "Hi there", Key: testKey})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("encrypt status %d", resp.StatusCode)
	}
	var enc protocol.Trace
	if err := json.NewDecoder(resp.Body).Decode(&enc); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(enc.Output) != 32 || len(enc.Steps) != 42 {
		t.Fatalf("unexpected trace: output %q, %d steps", enc.Output, len(enc.Steps))
	}

	resp2 := postJSON(t, ts.URL+"/api/aes/decrypt", protocol.DecryptRequest{Ciphertext: enc.Output, Key: testKey})
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("decrypt status %d", resp2.StatusCode)
	}
	var dec protocol.Trace
	if err := json.NewDecoder(resp2.Body).Decode(&dec); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if dec.Output != "Hi there" {
		t.Fatalf("decrypted %q", dec.Output)
	}
}

func TestKeyScheduleEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/aes/key-schedule", protocol.KeyScheduleRequest{Key: testKey})
	defer resp.Body.Close()
	var ks protocol.KeyScheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&ks); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(ks.RoundKeys) != 11 || ks.KeyID == "" {
		t.Fatalf("unexpected response %+v", ks)
	}
}

func TestErrorKinds(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		path string
		body interface{}
		kind string
	}{
		{"short key", "/api/aes/encrypt", protocol.EncryptRequest{Plaintext: "x", Key: "short"}, encryption.KindInvalidKeyLength},
		{"non-hex", "/api/aes/decrypt", protocol.DecryptRequest{Ciphertext: strings.Repeat("Z", 32), Key: testKey}, encryption.KindInvalidCiphertextFormat},
		{"empty plaintext", "/api/aes/encrypt", protocol.EncryptRequest{Key: testKey}, encryption.KindInvalidInput},
		{"bad body", "/api/aes/encrypt", "not an object", encryption.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.URL+tt.path, tt.body)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", resp.StatusCode)
			}
			var e protocol.ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if e.Kind != tt.kind {
				t.Fatalf("kind %s, want %s (%s)", e.Kind, tt.kind, e.Error)
			}
		})
	}
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

type rawEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func TestWebSocketStreamsSteps(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts)

	req := protocol.VisualizeRequest{Operation: protocol.Encrypt, Input: "stream me", Key: testKey, StepDelayMS: 1}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var steps []protocol.TraceStep
	for {
		var ev rawEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read failed after %d steps: %v", len(steps), err)
		}
		if ev.Type == protocol.EventStep {
			var step protocol.TraceStep
			if err := json.Unmarshal(ev.Data, &step); err != nil {
				t.Fatalf("bad step: %v", err)
			}
			steps = append(steps, step)
			continue
		}
		if ev.Type != protocol.EventDone {
			t.Fatalf("unexpected event %s: %s", ev.Type, ev.Data)
		}
		var done protocol.Trace
		if err := json.Unmarshal(ev.Data, &done); err != nil {
			t.Fatalf("bad done event: %v", err)
		}
		if len(steps) != 42 {
			t.Fatalf("got %d steps, want 42", len(steps))
		}
		for i, s := range steps {
			if s.Index != i {
				t.Fatalf("step %d arrived with index %d", i, s.Index)
			}
		}
		if steps[41].State != done.Output {
			t.Fatal("final step does not match the ciphertext")
		}
		return
	}
}

func TestWebSocketReportsErrors(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts)

	req := protocol.VisualizeRequest{Operation: protocol.Decrypt, Input: "xyz", Key: testKey}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev rawEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if ev.Type != protocol.EventError {
		t.Fatalf("event %s, want error", ev.Type)
	}
	var e protocol.ErrorResponse
	if err := json.Unmarshal(ev.Data, &e); err != nil {
		t.Fatalf("bad error event: %v", err)
	}
	if e.Kind != encryption.KindInvalidCiphertextFormat {
		t.Fatalf("kind %s", e.Kind)
	}
}

func TestClientCount(t *testing.T) {
	s, ts := newTestServer(t)
	dialWS(t, ts)

	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount = %d, want 1", s.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
