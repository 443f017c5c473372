package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Event is the envelope pushed to dashboard clients.
type Event struct {
	Type  string      `json:"type"` // new_order
	Order interface{} `json:"order"`
}

// Client is one dashboard connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans order events out to all connected dashboard clients. The
// storefront never connects; this feed is admin-only.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes registrations and broadcasts. Start it once, in its own
// goroutine, before serving connections.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Dashboard client connected", map[string]interface{}{
				"total_clients": total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Dashboard client disconnected", map[string]interface{}{
				"total_clients": total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop the message rather than block
					// every other client.
					logger.Warn("Dropping event for slow dashboard client", nil)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastNewOrder pushes a freshly created order to every dashboard.
func (h *Hub) BroadcastNewOrder(order *model.Order) {
	payload, err := json.Marshal(Event{Type: "new_order", Order: order})
	if err != nil {
		logger.Error("Failed to encode order event", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("Order event queue full, dropping event", map[string]interface{}{
			"order_id": order.ID,
		})
	}
}

// Serve registers the connection with the hub and starts its pumps.
func (h *Hub) Serve(conn *websocket.Conn) {
	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 64),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump discards client messages; the feed is one-way. It exists to
// process control frames and detect closed connections.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
