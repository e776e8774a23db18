package socket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shivraj416/egram/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Viewers connect from the static site's origin; the data pushed here is
	// public, so any origin is accepted.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one connected viewer session. No state outlives the connection.
type Client struct {
	Hub        *Hub
	Conn       *websocket.Conn
	RemoteAddr string
	Send       chan []byte
}

// inbound is the only client-to-server message shape. Viewers may send a
// generic refresh signal; everything else is ignored.
type inbound struct {
	Event string `json:"event"`
}

// ServeWs upgrades the HTTP connection and registers the viewer with the hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Sugar.Error(err)
		return
	}

	client := &Client{
		Hub:        hub,
		Conn:       conn,
		RemoteAddr: r.RemoteAddr,
		Send:       make(chan []byte, 256),
	}
	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar.Errorf("error: %v", err)
			}
			break
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		// "update-data" is the legacy name older pages still send.
		if msg.Event == "refresh" || msg.Event == "update-data" {
			c.Hub.Publish(NewData(KindAll, nil))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			c.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
