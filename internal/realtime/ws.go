// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"bukhara/internal/models"
)

// WebSocket message types.
const (
	MsgTypeHello       = "hello"
	MsgTypeMenuChanged = "menu_changed"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

// Message is a frame sent to WebSocket clients.
type Message struct {
	Type     string    `json:"type"`
	ClientID string    `json:"client_id,omitempty"`
	Table    string    `json:"table,omitempty"`
	Op       string    `json:"op,omitempty"`
	ID       string    `json:"id,omitempty"`
	Category string    `json:"category,omitempty"`
	At       time.Time `json:"at"`
}

// WSServer upgrades HTTP requests to WebSocket connections and forwards
// hub changes to them. A client may pass ?category=<id> to receive only
// changes touching that category.
type WSServer struct {
	hub      *Hub
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*wsClient
}

type wsClient struct {
	id          string
	conn        *websocket.Conn
	send        chan []byte
	unsubscribe func()
	closeOnce   sync.Once
}

// NewWSServer creates a WebSocket endpoint for hub. allowedOrigins limits
// cross-origin browsers; empty or "*" accepts any origin.
func NewWSServer(hub *Hub, allowedOrigins []string) *WSServer {
	return &WSServer{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		clients: make(map[string]*wsClient),
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		return slices.ContainsFunc(allowed, func(a string) bool {
			return strings.EqualFold(strings.TrimRight(a, "/"), origin)
		})
	}
}

// ServeHTTP handles one WebSocket connection.
func (s *WSServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &wsClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	forward := func(ch models.Change) { s.deliver(c, ch) }
	if category := r.URL.Query().Get("category"); category != "" {
		c.unsubscribe = s.hub.SubscribeCategory(category, forward)
	} else {
		c.unsubscribe = s.hub.Subscribe(forward)
	}

	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()

	slog.Debug("websocket client connected", "client", c.id, "remote", r.RemoteAddr)

	s.enqueue(c, Message{Type: MsgTypeHello, ClientID: c.id, At: time.Now().UTC()})
	go s.writeLoop(c)
	s.readLoop(c)
}

// deliver converts a change into a frame for one client.
func (s *WSServer) deliver(c *wsClient, ch models.Change) {
	s.enqueue(c, Message{
		Type:     MsgTypeMenuChanged,
		Table:    ch.Table,
		Op:       ch.Op,
		ID:       ch.ID,
		Category: ch.Category,
		At:       ch.ReceivedAt,
	})
}

// enqueue never blocks the publisher: a client whose buffer is full is
// disconnected. The send happens under the read lock so it cannot race
// with drop closing the channel.
func (s *WSServer) enqueue(c *wsClient, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket encode failed", "error", err)
		return
	}

	s.mu.RLock()
	_, alive := s.clients[c.id]
	sent := false
	if alive {
		select {
		case c.send <- data:
			sent = true
		default:
		}
	}
	s.mu.RUnlock()

	if alive && !sent {
		slog.Warn("websocket client too slow, dropping", "client", c.id)
		s.drop(c)
	}
}

// readLoop consumes client frames until the connection closes. Clients
// are not expected to send anything besides control frames.
func (s *WSServer) readLoop(c *wsClient) {
	defer s.drop(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", "client", c.id, "error", err)
			}
			return
		}
	}
}

func (s *WSServer) writeLoop(c *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.drop(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.drop(c)
				return
			}
		}
	}
}

// drop unsubscribes and closes a client exactly once.
func (s *WSServer) drop(c *wsClient) {
	c.closeOnce.Do(func() {
		c.unsubscribe()

		s.mu.Lock()
		delete(s.clients, c.id)
		close(c.send)
		s.mu.Unlock()

		slog.Debug("websocket client disconnected", "client", c.id)
	})
}

// ClientCount returns the number of connected clients.
func (s *WSServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close disconnects every client.
func (s *WSServer) Close() {
	s.mu.RLock()
	clients := make([]*wsClient, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		s.drop(c)
	}
}
