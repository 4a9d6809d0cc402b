package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers a dashboard connection and runs its pumps. Blocks until
// the connection drops.
func ServeWs(hub *Hub, c *websocket.Conn) {
	client := &Client{Hub: hub, Conn: c, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
