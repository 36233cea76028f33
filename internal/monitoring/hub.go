package monitoring

import (
	"log"
	"net/http"
	"sync"
	"time"

	"quotation-backend/internal/metrics"
	"quotation-backend/internal/models"

	"github.com/gorilla/websocket"
)

// writeWait bounds each write to a subscriber
const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub pushes item updates to websocket subscribers. A subscriber connects to
// /ws?q=<quotation_number> to receive only that quotation, or without q for all.
type Hub struct {
	clientsMux sync.Mutex
	clients    map[*websocket.Conn]string
	broadcast  chan models.ItemUpdatedEvent
	done       chan struct{}
	closeOnce  sync.Once
	writeWait  time.Duration
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]string),
		broadcast: make(chan models.ItemUpdatedEvent, 256),
		done:      make(chan struct{}),
		writeWait: writeWait,
	}
}

// Run delivers published events until Close is called
func (h *Hub) Run() {
	for {
		select {
		case event := <-h.broadcast:
			h.deliver(event)
		case <-h.done:
			return
		}
	}
}

// Close stops Run and disconnects every subscriber
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
		h.clientsMux.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.clientsMux.Unlock()
		metrics.LiveSubscribers.Set(0)
	})
}

// PublishItemUpdated queues an event without blocking the caller
func (h *Hub) PublishItemUpdated(event models.ItemUpdatedEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[Monitoring] Broadcast buffer full, dropping %s %s/%s", event.Type, event.QuotationNumber, event.ItemCode)
	}
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the subscriber registered until it
// disconnects
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Monitoring] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = r.URL.Query().Get("q")
	metrics.LiveSubscribers.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn)
			return
		}
	}
}

// deliver writes event to every matching subscriber. Writes happen outside
// clientsMux; Run is the only writer.
func (h *Hub) deliver(event models.ItemUpdatedEvent) {
	h.clientsMux.Lock()
	targets := make([]*websocket.Conn, 0, len(h.clients))
	for conn, number := range h.clients {
		if number == "" || number == event.QuotationNumber {
			targets = append(targets, conn)
		}
	}
	h.clientsMux.Unlock()

	for _, conn := range targets {
		conn.SetWriteDeadline(time.Now().Add(h.writeWait))
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("[Monitoring] Dropping subscriber %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			h.remove(conn)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.clientsMux.Lock()
	delete(h.clients, conn)
	metrics.LiveSubscribers.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()
}
