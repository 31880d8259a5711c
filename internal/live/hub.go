package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"playlist-manager/internal/logging"
	"playlist-manager/internal/metrics"
	"playlist-manager/internal/view"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 64 << 10
	sendBuffer     = 64
	inputTimeout   = 10 * time.Second
)

// InputHandler receives browser input.
type InputHandler interface {
	Dispatch(ctx context.Context, in view.Input) error
}

// Resyncer is implemented by input handlers that have ops for a browser
// that just connected. send delivers to that browser only.
type Resyncer interface {
	Resync(ctx context.Context, send func([]view.Op)) error
}

// Message is what the hub sends to browsers.
type Message struct {
	Ops []view.Op `json:"ops"`
}

// Hub tracks connected browsers.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	handler  InputHandler
	upgrader websocket.Upgrader
}

var _ view.Surface = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// SetHandler sets the receiver of browser input. It must be called before
// the hub serves connections.
func (h *Hub) SetHandler(handler InputHandler) { h.handler = handler }

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Apply implements view.Surface.
func (h *Hub) Apply(ops ...view.Op) {
	if len(ops) == 0 {
		return
	}
	msg, err := json.Marshal(Message{Ops: ops})
	if err != nil {
		logging.Error("Failed to encode ops: %v", err)
		return
	}
	h.broadcast(msg)
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.deliverLocked(c, msg)
	}
}

// sendTo queues msg for c alone, if c is still connected.
func (h *Hub) sendTo(c *client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		h.deliverLocked(c, msg)
	}
}

func (h *Hub) deliverLocked(c *client, msg []byte) {
	select {
	case c.send <- msg:
		metrics.LiveMessagesTotal.WithLabelValues("out").Inc()
	default:
		logging.Warn("Dropping slow live client %s", c.addr)
		metrics.LiveDroppedTotal.Inc()
		h.removeLocked(c)
	}
}

func (h *Hub) resync(c *client) {
	r, ok := h.handler.(Resyncer)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), inputTimeout)
	defer cancel()
	err := r.Resync(ctx, func(ops []view.Op) {
		if len(ops) == 0 {
			return
		}
		msg, err := json.Marshal(Message{Ops: ops})
		if err != nil {
			logging.Error("Failed to encode ops: %v", err)
			return
		}
		h.sendTo(c, msg)
	})
	if err != nil {
		logging.Debug("Resync of %s failed: %v", c.addr, err)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	metrics.LiveClients.Set(float64(len(h.clients)))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.LiveClients.Set(float64(len(h.clients)))
}

// Close disconnects every browser.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Debug("Websocket upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer), addr: r.RemoteAddr}
	h.add(c)
	logging.Debug("Live client connected: %s", c.addr)

	go c.writePump()
	h.resync(c)
	c.readPump()
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	addr string
}

func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		_ = c.conn.Close()
		logging.Debug("Live client disconnected: %s", c.addr)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("Live client %s read error: %v", c.addr, err)
			}
			return
		}
		metrics.LiveMessagesTotal.WithLabelValues("in").Inc()
		c.handle(data)
	}
}

func (c *client) handle(data []byte) {
	var in view.Input
	if err := json.Unmarshal(data, &in); err != nil {
		logging.Debug("Ignoring malformed input from %s: %v", c.addr, err)
		return
	}
	if c.hub.handler == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), inputTimeout)
	defer cancel()
	if err := c.hub.handler.Dispatch(ctx, in); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logging.Warn("Input %s from %s timed out", in.Kind, c.addr)
			return
		}
		logging.Debug("Input %s from %s rejected: %v", in.Kind, c.addr, err)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
