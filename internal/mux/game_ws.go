package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vilass86/cardgame/pkg/event"
	"github.com/vilass86/cardgame/pkg/model"
)

// The feed is push-only. Pings keep the connection alive, and the read side
// exists solely to notice the peer going away.
const (
	writeWait  = time.Second * 10
	pongWait   = time.Second * 60
	pingPeriod = pongWait * 9 / 10

	// maxInboundBytes bounds frames from the peer, which sends nothing but
	// control frames on a healthy connection
	maxInboundBytes = 512
)

func (m *Mux) getGameUUIDWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		conn.SetReadLimit(maxInboundBytes)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		game := r.Context().Value(ctxGameKey).(*model.Game)
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		client := event.NewClient(player, game.UUID)

		m.hub.ClientConnected(client)

		closeFrameSeen := make(chan struct{})
		defer func() {
			m.hub.ClientDisconnected(client)
			_ = conn.Close()
			close(closeFrameSeen)
		}()

		go pushEvents(conn, client, closeFrameSeen)
		client.CloseError = discardInbound(conn, client)
	}
}

// pushEvents writes queued events and keepalive pings until the connection
// dies or the hub asks for a close
func pushEvents(conn *websocket.Conn, client *event.Client, closeFrameSeen <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.SendChan():
			if !ok {
				return
			}

			logrus.WithField("key", msg.Key).WithField("client", client.String()).Trace("sending message to client")

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the peer's close frame
			select {
			case <-closeFrameSeen:
			case <-time.After(time.Second):
			}
			return
		}
	}
}

// discardInbound reads and drops frames until the connection errors out,
// returning the error that ended the session
func discardInbound(conn *websocket.Conn, client *event.Client) error {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Debug("connection closed unexpectedly")
			}

			return err
		}
	}
}
