// internal/chat/hub.go

package chat

import (
	"context"
	"log"
	"sync"
)

// Hub keeps track of connected chat clients and routes frames to them.
// One client per user; a second connection replaces the first.
type Hub struct {
	clients map[int64]*Client

	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run processes register and unregister events until Shutdown
func (h *Hub) Run() {
	h.wg.Add(1)
	defer h.wg.Done()

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if existing, ok := h.clients[client.userID]; ok {
				close(existing.send)
			} else {
				RecordConnectionOpened()
			}
			h.clients[client.userID] = client
			h.mu.Unlock()
			log.Printf("chat: user %d connected", client.userID)

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
				RecordConnectionClosed()
			}
			h.mu.Unlock()
			log.Printf("chat: user %d disconnected", client.userID)
		}
	}
}

// SendToUser queues a frame for one connected user. Returns false when
// the user is offline or their send buffer is full.
func (h *Hub) SendToUser(userID int64, frame []byte) bool {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	select {
	case client.send <- frame:
		return true
	default:
		return false
	}
}

// IsOnline reports whether the user has an active connection
func (h *Hub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// Shutdown stops the hub and closes every connection
func (h *Hub) Shutdown() {
	h.cancel()
	h.wg.Wait()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, client := range h.clients {
		close(client.send)
		delete(h.clients, userID)
		RecordConnectionClosed()
	}
}
