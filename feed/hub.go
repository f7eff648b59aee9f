// Package feed streams run events to read-only websocket spectators
package feed

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/lane-runner/core"
	"github.com/lixenwraith/lane-runner/event"
	"github.com/lixenwraith/lane-runner/parameter"
	"github.com/lixenwraith/lane-runner/status"
)

// Message is the wire frame sent for every event
type Message struct {
	Type    string `json:"type"`
	Frame   int64  `json:"frame"`
	Payload any    `json:"payload,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub fans encoded events out to connected clients
// A client whose queue is full is disconnected rather than stalling the tick
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	closed   bool

	reg     *status.Registry
	count   *atomic.Int64
	dropped *atomic.Int64
}

// NewHub creates a hub publishing client counts to reg; reg may be nil
func NewHub(reg *status.Registry) *Hub {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			// Spectator feed is read-only, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		reg:     reg,
		count:   reg.Ints.Get(status.KeyFeedClients),
		dropped: reg.Ints.Get(status.KeyFeedDropped),
	}
}

// ServeHTTP upgrades the request and blocks until the client leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed: upgrade: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, parameter.FeedSendBuffer)}

	// Greeting carries the current metrics so late joiners start in sync
	if hello, err := json.Marshal(Message{Type: "status", Payload: h.reg.Snapshot()}); err == nil {
		c.send <- hello
	}

	if !h.add(c) {
		conn.Close()
		return
	}
	log.Printf("feed: client connected from %s", r.RemoteAddr)

	core.Go(func() { h.writeLoop(c) })
	h.readLoop(c)

	h.remove(c)
	log.Printf("feed: client %s left", r.RemoteAddr)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.count.Store(int64(len(h.clients)))
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.count.Store(int64(len(h.clients)))
	h.mu.Unlock()
}

// readLoop discards inbound frames and returns when the peer goes away
func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(parameter.FeedReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(parameter.FeedPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(parameter.FeedPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(parameter.FeedPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(parameter.FeedWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(parameter.FeedWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast queues msg on every client without blocking
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			c.close()
			h.dropped.Add(1)
		}
	}
	h.count.Store(int64(len(h.clients)))
}

// HandleEvent encodes ev with its registered name
func (h *Hub) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventTick {
		return
	}
	data, err := json.Marshal(Message{Type: ev.Type.String(), Frame: ev.Frame, Payload: ev.Payload})
	if err != nil {
		log.Printf("feed: encode %v: %v", ev.Type, err)
		return
	}
	h.Broadcast(data)
}

// EventTypes subscribes to every event
func (h *Hub) EventTypes() []event.EventType { return nil }

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
	h.count.Store(0)
}
