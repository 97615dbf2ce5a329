package gateway

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"aesviz/server/internal/protocol"
)

var nextClientID int64

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("WebSocket upgrade failed", err)
		return
	}

	client := &Client{
		id:     atomic.AddInt64(&nextClientID, 1),
		conn:   conn,
		send:   make(chan *protocol.WebSocketEvent, 64),
		done:   make(chan struct{}),
		server: s,
	}

	select {
	case s.register <- client:
	case <-s.quit:
		conn.Close()
		return
	}

	// Start reading and writing goroutines
	go client.readPump()
	go client.writePump()
}

// runHub tracks connected clients until the server shuts down
func (s *Server) runHub() {
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client] = true
			s.mu.Unlock()
			s.logger.Debug("Client connected", client.id)

		case client := <-s.unregister:
			s.mu.Lock()
			delete(s.clients, client)
			s.mu.Unlock()
			s.logger.Debug("Client disconnected", client.id)

		case <-s.quit:
			s.mu.Lock()
			for c := range s.clients {
				c.close()
				delete(s.clients, c)
			}
			s.mu.Unlock()
			return
		}
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// readPump reads visualize requests. A new request cancels the animation
// still running for this client.
func (c *Client) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		c.close()
		select {
		case c.server.unregister <- c:
		case <-c.server.quit:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(protocol.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(protocol.ReadTimeout))
		return nil
	})

	animCancel := func() {}
	defer func() { animCancel() }()

	for {
		var req protocol.VisualizeRequest
		if err := c.conn.ReadJSON(&req); err != nil {
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(protocol.ReadTimeout))

		animCancel()
		var animCtx context.Context
		animCtx, animCancel = context.WithCancel(ctx)
		go c.animate(animCtx, req)
	}
}

// animate computes the whole trace up front, then paces it out step by step
func (c *Client) animate(ctx context.Context, req protocol.VisualizeRequest) {
	trace, err := c.server.svc.Run(ctx, &req)
	if err != nil {
		c.enqueue(ctx, protocol.NewEvent(protocol.EventError, errorResponse(err)))
		return
	}

	delay := c.server.cfg.Visualizer.ClampStepDelay(req.StepDelayMS)
	if delay <= 0 {
		delay = time.Millisecond
	}
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for i := range trace.Steps {
		if !c.enqueue(ctx, protocol.NewEvent(protocol.EventStep, trace.Steps[i])) {
			return
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}

	summary := *trace
	summary.Steps = nil
	c.enqueue(ctx, protocol.NewEvent(protocol.EventDone, summary))
}

func (c *Client) enqueue(ctx context.Context, ev *protocol.WebSocketEvent) bool {
	select {
	case c.send <- ev:
		return true
	case <-ctx.Done():
		return false
	case <-c.done:
		return false
	}
}

// writePump writes events to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(protocol.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(protocol.WriteTimeout))
			if err := c.conn.WriteJSON(ev); err != nil {
				c.close()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(protocol.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(protocol.WriteTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
