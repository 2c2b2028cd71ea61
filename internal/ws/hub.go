// Package ws fans feed events out to live websocket subscribers.
package ws

// Subscriber abstracts a streaming client.
type Subscriber interface {
	Send([]byte) error
	Close()
}

// Hub manages feed stream subscriptions. All posts share a single stream.
type Hub struct {
	clients   map[Subscriber]struct{}
	register  chan Subscriber
	unreg     chan Subscriber
	broadcast chan []byte
}

// NewHub creates an initialized Hub.
func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[Subscriber]struct{}),
		register:  make(chan Subscriber),
		unreg:     make(chan Subscriber),
		broadcast: make(chan []byte),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case sub := <-h.register:
			h.clients[sub] = struct{}{}
		case sub := <-h.unreg:
			delete(h.clients, sub)
		case payload := <-h.broadcast:
			for c := range h.clients {
				if err := c.Send(payload); err != nil {
					c.Close()
					delete(h.clients, c)
				}
			}
		}
	}
}

// Register adds a client to the feed stream.
func (h *Hub) Register(client Subscriber) {
	h.register <- client
}

// Unregister removes a client.
func (h *Hub) Unregister(client Subscriber) {
	h.unreg <- client
}

// Broadcast sends payload to every subscriber.
func (h *Hub) Broadcast(payload []byte) {
	h.broadcast <- payload
}
