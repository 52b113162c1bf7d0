package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/c9s/bollband/pkg/metrics"
	"github.com/c9s/bollband/pkg/types"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	EnableCompression: true,
}

// BandsEvent is pushed to the websocket clients whenever the bands change.
type BandsEvent struct {
	Event    string                  `json:"event"`
	Version  int64                   `json:"version"`
	Candles  int                     `json:"candles"`
	Settings types.BollingerSettings `json:"settings"`
	Bands    []types.BandPoint       `json:"bands"`
	Error    string                  `json:"error,omitempty"`
}

func newBandsEvent(snapshot Snapshot) BandsEvent {
	evt := BandsEvent{
		Event:    "bands",
		Version:  snapshot.Version,
		Candles:  len(snapshot.Prices),
		Settings: snapshot.Settings,
		Bands:    snapshot.Bands,
	}
	if snapshot.Err != nil {
		evt.Error = snapshot.Err.Error()
	}
	return evt
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans the band updates out to the connected websocket clients.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends the snapshot to every client. Slow clients whose buffer is
// full are dropped.
func (h *Hub) Broadcast(snapshot Snapshot) {
	payload, err := json.Marshal(newBandsEvent(snapshot))
	if err != nil {
		log.WithError(err).Error("can not marshal bands event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			log.Warn("websocket client is too slow, dropping it")
			delete(h.clients, c)
			close(c.send)
		}
	}
	metrics.WebsocketClientsMetrics.Set(float64(len(h.clients)))
}

// Serve upgrades the request and streams the updates, starting with the
// given snapshot.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, initial Snapshot) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade error")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}

	payload, err := json.Marshal(newBandsEvent(initial))
	if err == nil {
		c.send <- payload
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.WebsocketClientsMetrics.Set(float64(count))

	log.Infof("websocket client connected (%d total)", count)

	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	metrics.WebsocketClientsMetrics.Set(float64(len(h.clients)))
	h.mu.Unlock()
}

func (h *Hub) writePump(c *client) {
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
				h.remove(c)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

// readPump only drains control frames; clients do not send commands.
func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
