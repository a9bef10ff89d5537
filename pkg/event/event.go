package event

import "time"

// Keys for every event the server pushes to a game feed
const (
	KeyGameInitialized      = "gameInitialized"
	KeyPlayerJoined         = "playerJoined"
	KeyRandomnessRequested  = "randomnessRequested"
	KeyRandomnessReceived   = "randomnessReceived"
	KeyRoundStarted         = "roundStarted"
	KeyBetPlaced            = "betPlaced"
	KeyGameOver             = "gameOver"
	KeyLeaderboardFinalized = "leaderboardFinalized"
	KeyPrizeClaimed         = "prizeClaimed"
	KeyClientState          = "clientState"
)

// Event is a message pushed to the clients subscribed to a game feed
type Event struct {
	Key      string      `json:"key"`
	GameUUID string      `json:"gameUuid"`
	PlayerID int64       `json:"playerId,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Time     time.Time   `json:"time"`
}

// New returns an event stamped with the current time
func New(key, gameUUID string, playerID int64, data interface{}) *Event {
	return &Event{
		Key:      key,
		GameUUID: gameUUID,
		PlayerID: playerID,
		Data:     data,
		Time:     time.Now(),
	}
}
