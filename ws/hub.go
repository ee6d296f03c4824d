package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// Client is one WebSocket connection to the dashboard.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub keeps the connected dashboard clients and fans broadcast messages out
// to all of them.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// Event is the message shape pushed to dashboard clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// BroadcastEvent marshals the event and fans it out to every client.
func (h *Hub) BroadcastEvent(evt Event) {
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Printf("ws: failed to marshal event %q: %v", evt.Event, err)
		return
	}
	h.Broadcast <- payload
}
