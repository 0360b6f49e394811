// Package ws broadcasts launcher events (update milestones, server log lines,
// lifecycle signals) to connected websocket clients. A bounded history is
// replayed to clients that connect mid-operation.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"palauncher/internal/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	unregister chan *Client
	stop       chan bool

	history    [][]byte
	maxHistory int

	snapshotRequests chan *Client

	mu sync.RWMutex
}

func NewHub(maxHistory int) *Hub {
	if maxHistory < 0 {
		maxHistory = 0
	}
	h := &Hub{
		broadcast:        make(chan []byte, 4096),
		unregister:       make(chan *Client),
		clients:          make(map[*Client]bool),
		stop:             make(chan bool),
		maxHistory:       maxHistory,
		snapshotRequests: make(chan *Client, 8),
	}
	if maxHistory > 0 {
		h.history = make([][]byte, 0, maxHistory)
	}
	return h
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				if client.replay != nil {
					close(client.replay)
				}
			}

		case client := <-h.snapshotRequests:
			h.mu.RLock()
			if len(h.history) > 0 {
				copyHist := make([][]byte, len(h.history))
				copy(copyHist, h.history)
				h.mu.RUnlock()
				if client.replay == nil {
					client.replay = make(chan []byte, len(copyHist))
				}
				for _, msg := range copyHist {
					client.replay <- msg
				}
			} else {
				h.mu.RUnlock()
			}
			h.clients[client] = true

		case message := <-h.broadcast:
			msgCopy := append([]byte(nil), message...)
			if h.maxHistory > 0 {
				h.mu.Lock()
				h.history = append(h.history, msgCopy)
				if len(h.history) > h.maxHistory {
					h.history = h.history[1:]
				}
				h.mu.Unlock()
			}

			for client := range h.clients {
				select {
				case client.send <- msgCopy:
				default:
					close(client.send)
					if client.replay != nil {
						close(client.replay)
					}
					delete(h.clients, client)
				}
			}

		case <-h.stop:
			for client := range h.clients {
				close(client.send)
			}
			h.mu.Lock()
			h.history = nil
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
}

// Emit encodes an event and broadcasts it. Implements domain.Notifier.
func (h *Hub) Emit(eventType string, data any) {
	payload, err := json.Marshal(domain.Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("ws: could not encode %s event: %v", eventType, err)
		return
	}
	h.broadcast <- payload
}

func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 256), replay: nil}

	go client.writePump()
	go client.readPump()

	select {
	case h.snapshotRequests <- client:
	default:
		go func() { h.snapshotRequests <- client }()
	}
}
