package websocket

import (
	"context"
	"sync"

	"ats-scheduler-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// redisChannel relays dashboard payloads between instances when Redis is
// configured. With a single instance the hub works purely in-process.
const redisChannel = "dashboard_events"

// Hub fans outcome events out to every connected dashboard. Connections are
// anonymous viewers; there is no per-user routing.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client registered", map[string]interface{}{
				"clients": h.clientCount(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client unregistered", map[string]interface{}{
				"clients": h.clientCount(),
			})
		}
	}
}

// Broadcast sends a serialized event payload to all connected dashboards and,
// when Redis is configured, relays it to the other instances.
func (h *Hub) Broadcast(payload []byte) {
	h.broadcastLocal(payload)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), redisChannel, payload)
	}
}

func (h *Hub) broadcastLocal(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", nil)
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, redisChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.broadcastLocal([]byte(msg.Payload))
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
