package websocket

// Client represents one live feed subscriber bound to a user.
type Client struct {
	UserID string
	send   chan []byte
}

// NewClient creates a client with a buffered outbound queue.
func NewClient(userID string) *Client {
	return &Client{UserID: userID, send: make(chan []byte, 256)}
}

// Receive exposes the ordered stream of payloads queued for this client.
// The channel is closed when the client is unregistered or dropped.
func (c *Client) Receive() <-chan []byte {
	return c.send
}

// Hub manages active clients and per-user delivery.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan userPayload
	// Map of userID to set of clients
	clientsByUser map[string]map[*Client]bool
}

type userPayload struct {
	userID  string
	payload []byte
}

// NewHub creates and starts a new Hub loop.
func NewHub() *Hub {
	h := &Hub{
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		broadcast:     make(chan userPayload, 64),
		clientsByUser: make(map[string]map[*Client]bool),
	}
	go h.run()
	return h
}

// run owns clientsByUser; all registration and delivery is serialized here so
// payloads for a user are queued in the order NotifyUser was called.
func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			set, ok := h.clientsByUser[c.UserID]
			if !ok {
				set = make(map[*Client]bool)
				h.clientsByUser[c.UserID] = set
			}
			set[c] = true
		case c := <-h.unregister:
			if set, ok := h.clientsByUser[c.UserID]; ok {
				if _, exists := set[c]; exists {
					delete(set, c)
					close(c.send)
					if len(set) == 0 {
						delete(h.clientsByUser, c.UserID)
					}
				}
			}
		case msg := <-h.broadcast:
			h.deliver(msg.userID, msg.payload)
		}
	}
}

func (h *Hub) deliver(userID string, payload []byte) {
	set, ok := h.clientsByUser[userID]
	if !ok {
		return
	}
	for c := range set {
		select {
		case c.send <- payload:
		default:
			// Backpressure: drop and disconnect slow clients
			close(c.send)
			delete(set, c)
		}
	}
	if len(set) == 0 {
		delete(h.clientsByUser, userID)
	}
}

// Register attaches a client to its user's delivery set.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister detaches the client and closes its queue.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// NotifyUser queues a payload for all connected clients of a given user.
func (h *Hub) NotifyUser(userID string, payload []byte) {
	if h == nil {
		return
	}
	h.broadcast <- userPayload{userID: userID, payload: payload}
}
