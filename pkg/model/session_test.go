package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vilass86/cardgame/pkg/deck"
	"github.com/vilass86/cardgame/pkg/hilo"
)

func TestGetSession_notJoined(t *testing.T) {
	admin := player()
	g := game(admin, 25)

	p := player()
	session, err := GetSession(cbg, g.UUID, p.ID)
	assert.Equal(t, ErrPlayerNotInGame, err)
	assert.Nil(t, session)
}

func TestSession_EngineRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	admin := player()
	g := game(admin, 25)

	p := fundedPlayer(25)
	session, err := p.JoinGame(cbg, g)
	assert.NoError(t, err)

	engine, err := session.Engine()
	assert.NoError(t, err)
	assert.Equal(t, p.ID, engine.PlayerID)
	assert.Equal(t, 1.0, engine.Multiplier)
	assert.Nil(t, engine.Randomness)
	assert.Nil(t, engine.Deck)

	assert.NoError(t, engine.ReceiveRandomness(12345))
	assert.NoError(t, engine.StartRound(1, now))
	assert.NoError(t, session.Save(cbg, engine))
	assert.True(t, session.HasRandomness())
	assert.Equal(t, 52, session.CardsLeft())

	session, err = GetSession(cbg, g.UUID, p.ID)
	assert.NoError(t, err)

	engine, err = session.Engine()
	assert.NoError(t, err)
	assert.NotNil(t, engine.Randomness)
	assert.Equal(t, uint64(12345), *engine.Randomness)
	assert.Equal(t, 52, engine.CardsLeft())
	assert.Equal(t, int64(1), engine.RoundID)
	assert.Equal(t, 1, engine.DailyRounds)
	assert.True(t, engine.StartedAt.Equal(now))

	// play out a short known deck and make sure the result survives a save
	engine.Deck = &deck.Deck{Cards: deck.CardsFromString("2c,9h,14s")}

	outcome, err := engine.PlaceBet(hilo.High, nil, now)
	assert.NoError(t, err)
	assert.True(t, outcome.Correct)
	assert.NoError(t, session.Save(cbg, engine))

	session, err = GetSession(cbg, g.UUID, p.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 1.2, session.Multiplier, 0.0001)
	assert.False(t, session.Finished)
	assert.Equal(t, 2, session.CardsLeft())

	engine, err = session.Engine()
	assert.NoError(t, err)

	// 14s over 9h makes a low bet wrong and ends the run
	outcome, err = engine.PlaceBet(hilo.Low, nil, now)
	assert.Equal(t, hilo.ErrGameOver, err)
	assert.False(t, outcome.Correct)
	assert.True(t, engine.Finished)
	assert.NoError(t, session.Save(cbg, engine))

	session, err = GetSession(cbg, g.UUID, p.ID)
	assert.NoError(t, err)
	assert.True(t, session.Finished)
	assert.Equal(t, 1, session.CardsLeft())
}
