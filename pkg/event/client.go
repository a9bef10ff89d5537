package event

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vilass86/cardgame/pkg/model"
	"github.com/vilass86/cardgame/pkg/token"
)

// Client is a subscriber to a game's event feed
type Client struct {
	// ID uniquely identifies the connection for logging
	ID string

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	send     chan *Event
	player   *model.Player
	gameUUID string
}

// NewClient returns a new client for the player on the game's feed
func NewClient(player *model.Player, gameUUID string) *Client {
	id, err := token.Generate(8)
	if err != nil {
		logrus.WithError(err).Error("could not generate client id")
	}

	return &Client{
		ID:       id,
		Close:    make(chan string),
		send:     make(chan *Event, 256),
		player:   player,
		gameUUID: gameUUID,
	}
}

// Send queues a message for the client. Slow clients lose messages instead
// of blocking the hub
func (c *Client) Send(msg *Event) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of queued messages
func (c *Client) SendChan() <-chan *Event {
	return c.send
}

// Player returns the player behind the connection
func (c *Client) Player() *model.Player {
	return c.player
}

// GameUUID returns the game whose feed the client watches
func (c *Client) GameUUID() string {
	return c.gameUUID
}

// String returns a traceable identifier for the player and game
func (c *Client) String() string {
	return fmt.Sprintf("%d:%s:%s", c.player.ID, c.gameUUID, c.ID)
}
