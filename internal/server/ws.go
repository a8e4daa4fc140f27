package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// The browser client is served from a different origin in every
	// deployment we run; access control happens at room level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection.
type Client struct {
	ID     string
	RoomID string // set once joinGame lands

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub owns every connected client and fans broadcast payloads out to
// them. Game mutation does not happen here; the hub only moves bytes.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// ServeWS upgrades an HTTP request and runs the connection's pumps. The
// router receives every inbound frame and the disconnect.
func (h *Hub) ServeWS(router *Router, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	h.logger.Debug("client connected", zap.String("conn_id", client.ID))

	go client.writePump()
	go client.readPump(router)
}

func (c *Client) readPump(router *Router) {
	defer func() {
		c.hub.drop(c)
		router.HandleDisconnect(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		router.HandleMessage(c, raw)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// BindRoom records which room a client belongs to. Guarded by the hub
// lock because broadcasts read RoomID from other goroutines.
func (h *Hub) BindRoom(c *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.RoomID = roomID
}

// drop unregisters a client and closes its send channel.
func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		close(c.send)
		h.logger.Debug("client disconnected", zap.String("conn_id", c.ID))
	}
}

// trySend queues a payload without blocking; a client that cannot keep
// up has its frames dropped rather than stalling the room.
func trySend(c *Client, payload []byte) {
	select {
	case c.send <- payload:
	default:
	}
}

// BroadcastAll sends a payload to every connected client.
func (h *Hub) BroadcastAll(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		trySend(c, payload)
	}
}

// BroadcastRoom sends a payload to every client bound to a room.
func (h *Hub) BroadcastRoom(roomID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.RoomID == roomID {
			trySend(c, payload)
		}
	}
}

// CloseAll disconnects every client, for shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}
