// internal/chat/client.go

package chat

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Client is one websocket connection owned by the hub
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	service Service
	userID  int64
	send    chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, service Service, userID int64) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		service: service,
		userID:  userID,
		send:    make(chan []byte, 256),
	}
}

// Start registers the client and launches its pumps
func (c *Client) Start() {
	c.hub.register <- c
	go c.writePump()
	go c.readPump()
}

// inboundFrame is what clients may send over the socket
type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id"`
	Content        string `json:"content"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("chat: user %d read error: %v", c.userID, err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		c.handleFrame(&frame)
	}
}

func (c *Client) handleFrame(frame *inboundFrame) {
	ctx := c.hub.ctx

	switch WSMessageType(frame.Type) {
	case WSTypeMessage:
		if frame.ConversationID == 0 || frame.Content == "" {
			return
		}
		if _, err := c.service.SendMessage(ctx, c.userID, frame.ConversationID, frame.Content); err != nil {
			log.Printf("chat: user %d ws send: %v", c.userID, err)
		}

	case WSTypeRead:
		if frame.ConversationID == 0 {
			return
		}
		if err := c.service.MarkConversationRead(ctx, c.userID, frame.ConversationID); err != nil {
			log.Printf("chat: user %d ws read: %v", c.userID, err)
		}

	case WSTypeTyping:
		if frame.ConversationID == 0 {
			return
		}
		c.service.RelayTyping(ctx, c.userID, frame.ConversationID)
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
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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
