// Gateway API implementation
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"aesviz/server/internal/config"
	"aesviz/server/internal/pkg/encryption"
	"aesviz/server/internal/pkg/helpers"
	"aesviz/server/internal/protocol"
	"aesviz/server/internal/services/visualizer"
)

// Server represents the API gateway
type Server struct {
	cfg        *config.Config
	svc        *visualizer.Service
	logger     *helpers.Logger
	httpServer *http.Server
	router     *mux.Router
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	stopOnce   sync.Once
}

// Client represents a connected WebSocket client
type Client struct {
	id     int64
	conn   *websocket.Conn
	send   chan *protocol.WebSocketEvent
	done   chan struct{}
	once   sync.Once
	server *Server
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// New creates a new gateway server and starts its client hub
func New(cfg *config.Config, svc *visualizer.Service, logger *helpers.Logger) *Server {
	if logger == nil {
		logger = helpers.NewLogger("Gateway")
	}
	s := &Server{
		cfg:        cfg,
		svc:        svc,
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		quit:       make(chan struct{}),
	}
	s.router = s.routes()
	go s.runHub()
	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()

	// Root endpoint - return OK for health checks
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("AES-128 Visualizer API Server"))
	}).Methods("GET", "OPTIONS")

	router.HandleFunc("/api/status", s.handleStatus).Methods("GET", "OPTIONS")

	// Cipher endpoints
	router.HandleFunc("/api/aes/encrypt", s.handleEncrypt).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/aes/decrypt", s.handleDecrypt).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/aes/key-schedule", s.handleKeySchedule).Methods("POST", "OPTIONS")

	// WebSocket endpoint
	router.HandleFunc("/ws", s.handleWebSocket)

	return router
}

// Handler returns the HTTP handler with middleware applied
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.router)
}

// Start starts the gateway server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Gateway server listening", s.cfg.Addr())
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and stops the hub
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.quit) })
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// ClientCount returns the number of connected WebSocket clients
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"algorithm": "AES-128",
		"clients":   s.ClientCount(),
	})
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	var req protocol.EncryptRequest
	if !s.decode(w, r, &req) {
		return
	}

	trace, err := s.svc.EncryptText(r.Context(), req.Plaintext, req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("Encrypt", trace.KeyID, len(trace.Steps))
	writeJSON(w, http.StatusOK, trace)
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	var req protocol.DecryptRequest
	if !s.decode(w, r, &req) {
		return
	}

	trace, err := s.svc.DecryptHex(r.Context(), req.Ciphertext, req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("Decrypt", trace.KeyID, len(trace.Steps))
	writeJSON(w, http.StatusOK, trace)
}

func (s *Server) handleKeySchedule(w http.ResponseWriter, r *http.Request) {
	var req protocol.KeyScheduleRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.svc.KeySchedule(r.Context(), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, protocol.ErrorResponse{
			Error: "Invalid request body",
			Kind:  encryption.KindInvalidInput,
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse(err))
}

func errorResponse(err error) protocol.ErrorResponse {
	return protocol.ErrorResponse{
		Error: err.Error(),
		Kind:  encryption.ErrorKind(err),
	}
}
