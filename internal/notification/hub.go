package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"skillconnect/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait       = 10 * time.Second
	defaultPongWait = 60 * time.Second
	maxMessageSize  = 512
)

// conn serialises writes; gorilla connections allow one writer at a time.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(ctx context.Context, payload []byte) error {
	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(deadline)
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub pushes events to the open WebSocket connections of their recipient
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*conn]struct{}

	upgrader   websocket.Upgrader
	pongWait   time.Duration
	pingPeriod time.Duration
}

type HubOption func(*Hub)

// WithAllowedOrigins restricts the Origin header accepted on upgrade.
// "*" accepts any origin; requests without an Origin header are always accepted.
// With no origins configured the same-origin check applies.
func WithAllowedOrigins(origins []string) HubOption {
	return func(h *Hub) {
		if len(origins) == 0 {
			return
		}
		allowed := make(map[string]struct{}, len(origins))
		for _, o := range origins {
			if o == "*" {
				h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
				return
			}
			allowed[normalizeOrigin(o)] = struct{}{}
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := allowed[normalizeOrigin(origin)]
			return ok
		}
	}
}

// WithKeepAlive drops a socket that has not answered a ping within pongWait
func WithKeepAlive(pongWait time.Duration) HubOption {
	return func(h *Hub) {
		if pongWait > 0 {
			h.pongWait = pongWait
			h.pingPeriod = pongWait * 9 / 10
		}
	}
}

func normalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(origin), "/"))
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		clients: make(map[uuid.UUID]map[*conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		pongWait:   defaultPongWait,
		pingPeriod: defaultPongWait * 9 / 10,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) register(userID uuid.UUID, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*conn]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) unregister(userID uuid.UUID, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Connections reports how many sockets userID has open
func (h *Hub) Connections(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) Notify(ctx context.Context, event *Event) error {
	h.mu.RLock()
	targets := make([]*conn, 0, len(h.clients[event.UserID]))
	for c := range h.clients[event.UserID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	var firstErr error
	for _, c := range targets {
		if err := c.write(ctx, payload); err != nil {
			h.unregister(event.UserID, c)
			_ = c.ws.Close()
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to push notification: %w", err)
			}
		}
	}
	return firstErr
}

// Serve upgrades the request and holds the connection open for userID until
// the client goes away or stops answering pings. Inbound messages are discarded.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	// replaces the server read timeout still armed on the hijacked connection
	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(h.pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	c := &conn{ws: ws}
	h.register(userID, c)
	logger.Debug("Notification socket opened", zap.String("user_id", userID.String()))

	done := make(chan struct{})
	go h.keepAlive(c, done)

	defer func() {
		close(done)
		h.unregister(userID, c)
		_ = ws.Close()
		logger.Debug("Notification socket closed", zap.String("user_id", userID.String()))
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return nil
		}
		_ = ws.SetReadDeadline(time.Now().Add(h.pongWait))
	}
}

func (h *Hub) keepAlive(c *conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}

// Close drops every open connection
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			c.mu.Lock()
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			c.mu.Unlock()
			_ = c.ws.Close()
		}
		delete(h.clients, userID)
	}
}
