package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"po-intake-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const progressChannel = "intake_progress"

// ProgressUpdate is one saga step pushed to the submitting client. The
// messages are additive: each one tells the user how far the pipeline got.
type ProgressUpdate struct {
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	Failed  bool      `json:"failed"`
	At      time.Time `json:"at"`
}

// Hub fans saga progress out to websocket clients watching a submission.
// Clients are keyed by correlation id; redis pub/sub carries updates to
// clients connected to other instances.
type Hub struct {
	clients map[uuid.UUID][]*Client

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
		clients:    make(map[uuid.UUID][]*Client),
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
			h.clients[client.CorrelationId] = append(h.clients[client.CorrelationId], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"correlation_id": client.CorrelationId})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.CorrelationId]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.CorrelationId] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.CorrelationId]) == 0 {
					delete(h.clients, client.CorrelationId)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish delivers an update to every client watching the submission, local
// and on other instances via redis.
func (h *Hub) Publish(correlationId uuid.UUID, update ProgressUpdate) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "progress",
		"data": update,
	})

	h.deliverLocal(correlationId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"correlation_id": correlationId.String(),
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), progressChannel, payload)
	}
}

func (h *Hub) deliverLocal(correlationId uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[correlationId]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Run owns the channel close; unregistering twice is a no-op
			// because the first pass removes the client from the map.
			h.logger.Warn("Hub", "Client send buffer full, dropping", map[string]interface{}{"correlation_id": correlationId})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, progressChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			CorrelationId string          `json:"correlation_id"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		id, err := uuid.Parse(payload.CorrelationId)
		if err != nil {
			continue
		}
		h.deliverLocal(id, payload.Message)
	}
}
