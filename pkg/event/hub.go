package event

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub fans events out to the clients watching each game
type Hub struct {
	lock  sync.RWMutex
	feeds map[string]map[*Client]bool

	connect    chan *Client
	disconnect chan *Client
	broadcast  chan *Event
	close      chan bool
}

// NewHub returns a new hub. Call Start before using it
func NewHub() *Hub {
	return &Hub{
		feeds:      make(map[string]map[*Client]bool),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		broadcast:  make(chan *Event, 256),
		close:      make(chan bool),
	}
}

// Start starts the hub run loop
func (h *Hub) Start() {
	go h.runLoop()
}

// Stop terminates the hub run loop
func (h *Hub) Stop() {
	close(h.close)
}

func (h *Hub) runLoop() {
	for {
		select {
		case client := <-h.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			h.addClient(client)
			h.sendClientState(client.gameUUID)
		case client := <-h.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			h.removeClient(client)
			h.sendClientState(client.gameUUID)
		case event := <-h.broadcast:
			for _, client := range h.Clients(event.GameUUID) {
				if !client.Send(event) {
					logrus.WithField("client", client.String()).Warn("send buffer full, dropping event")
				}
			}
		case <-h.close:
			return
		}
	}
}

// ClientConnected is called when a client connects to the server
// This method must return quickly
func (h *Hub) ClientConnected(client *Client) {
	h.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
// This method must return quickly
func (h *Hub) ClientDisconnected(client *Client) {
	h.disconnect <- client
}

// Broadcast queues an event for everyone watching the event's game
func (h *Hub) Broadcast(event *Event) {
	h.broadcast <- event
}

// Clients returns the clients watching the game at the time of the call
func (h *Hub) Clients(gameUUID string) []*Client {
	h.lock.RLock()
	defer h.lock.RUnlock()

	clients := make([]*Client, 0, len(h.feeds[gameUUID]))
	for client := range h.feeds[gameUUID] {
		clients = append(clients, client)
	}

	return clients
}

func (h *Hub) addClient(client *Client) {
	h.lock.Lock()
	defer h.lock.Unlock()

	feed, found := h.feeds[client.gameUUID]
	if !found {
		feed = make(map[*Client]bool)
		h.feeds[client.gameUUID] = feed
	}

	feed[client] = true
}

func (h *Hub) removeClient(client *Client) {
	h.lock.Lock()
	defer h.lock.Unlock()

	feed, found := h.feeds[client.gameUUID]
	if !found {
		return
	}

	delete(feed, client)
	if len(feed) == 0 {
		delete(h.feeds, client.gameUUID)
	}
}

// NOTE: must only be called from the run loop
func (h *Hub) sendClientState(gameUUID string) {
	clients := h.Clients(gameUUID)
	event := New(KeyClientState, gameUUID, 0, map[string]interface{}{
		"connected": len(clients),
	})

	for _, client := range clients {
		if !client.Send(event) {
			logrus.WithField("client", client.String()).Warn("send buffer full, dropping event")
		}
	}
}
