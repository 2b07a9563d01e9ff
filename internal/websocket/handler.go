package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches a websocket connection to the progress feed of one
// submission.
func ServeWs(hub *Hub, c *websocket.Conn, correlationId uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, CorrelationId: correlationId, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
