// Package ws implements the realtime broadcast channel: every message a peer
// sends is fanned out to all other connected peers, best effort. No state is
// retained, no ordering or delivery guarantee is made.
package ws

import (
	"context"

	"github.com/rs/zerolog"
)

type envelope struct {
	sender  *Client
	payload []byte
}

// Hub tracks connected clients and fans messages out to everyone except the
// sender. All membership changes and broadcasts go through one goroutine, so
// no locking is needed.
type Hub struct {
	logger     zerolog.Logger
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    map[*Client]struct{}{},
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 64),
	}
}

// Run processes hub events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				client.close()
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.logger.Debug().Int("peers", len(h.clients)).Msg("ws client connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			h.logger.Debug().Int("peers", len(h.clients)).Msg("ws client disconnected")
		case env := <-h.broadcast:
			for client := range h.clients {
				if client == env.sender {
					continue
				}
				select {
				case client.send <- env.payload:
				default:
					// slow consumer; drop it rather than stall fanout
					delete(h.clients, client)
					client.close()
				}
			}
		}
	}
}

// Broadcast queues a payload for delivery to every peer except sender.
func (h *Hub) Broadcast(sender *Client, payload []byte) {
	h.broadcast <- envelope{sender: sender, payload: payload}
}
