package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vilass86/cardgame/pkg/hilo"
)

func game(admin *Player, entryFee int64) *Game {
	now := time.Now().UTC()
	config, err := hilo.NewConfig(admin.ID, entryFee, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		panic(err)
	}

	g, err := CreateGame(cbg, config)
	if err != nil {
		panic(err)
	}

	return g
}

func fundedPlayer(amount int64) *Player {
	p := player()
	if _, err := AdjustWallet(cbg, p.ID, amount, nil, "deposit"); err != nil {
		panic(err)
	}

	return p
}

func TestCreateGame(t *testing.T) {
	admin := player()
	g := game(admin, 25)
	assert.NotEmpty(t, g.UUID)
	assert.Equal(t, admin.ID, g.AdminID)
	assert.Equal(t, int64(25), g.EntryFee)
	assert.Equal(t, hilo.DefaultLeaderboardCapacity, g.LeaderboardCapacity)
	assert.False(t, g.Finalized)
	assert.Nil(t, g.FinalizedAt)
	assert.Equal(t, int64(0), g.Pool)

	g2, err := GetGameByUUID(cbg, g.UUID)
	assert.NoError(t, err)
	assert.Equal(t, g.UUID, g2.UUID)
	assert.Equal(t, g.AdminID, g2.AdminID)

	games, err := GetGames(cbg, 0, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(games))
}

func TestPlayer_JoinGame(t *testing.T) {
	admin := player()
	g := game(admin, 25)

	broke := player()
	session, err := broke.JoinGame(cbg, g)
	assert.Equal(t, ErrInsufficientFunds, err)
	assert.Nil(t, session)

	p := fundedPlayer(100)
	session, err = p.JoinGame(cbg, g)
	assert.NoError(t, err)
	assert.NotNil(t, session)
	assert.Greater(t, session.ID, int64(0))
	assert.Equal(t, g.UUID, session.GameUUID)
	assert.Equal(t, p.ID, session.PlayerID)
	assert.False(t, session.HasRandomness())
	assert.Equal(t, int64(25), g.Pool)

	wallet, _ := GetWallet(cbg, p.ID)
	assert.Equal(t, int64(75), wallet.Balance)

	// a second join must not take another entry fee
	session, err = p.JoinGame(cbg, g)
	assert.Equal(t, ErrAlreadyJoined, err)
	assert.Nil(t, session)

	wallet, _ = GetWallet(cbg, p.ID)
	assert.Equal(t, int64(75), wallet.Balance)

	p2 := fundedPlayer(25)
	_, err = p2.JoinGame(cbg, g)
	assert.NoError(t, err)
	assert.Equal(t, int64(50), g.Pool)

	g2, _ := GetGameByUUID(cbg, g.UUID)
	assert.Equal(t, int64(50), g2.Pool)
}

func TestGame_SubmitScore(t *testing.T) {
	admin := player()
	g := game(admin, 25)

	p1 := player()
	p2 := player()

	assert.NoError(t, g.SubmitScore(cbg, p1.ID, 100))
	assert.NoError(t, g.SubmitScore(cbg, p2.ID, 150))

	// improving replaces the score but keeps the row order
	assert.NoError(t, g.SubmitScore(cbg, p1.ID, 200))

	// a worse score is ignored
	assert.NoError(t, g.SubmitScore(cbg, p1.ID, 50))

	entries, err := ScoreEntries(cbg, g.UUID)
	assert.NoError(t, err)
	assert.Equal(t, []hilo.Entry{
		{PlayerID: p1.ID, Score: 200},
		{PlayerID: p2.ID, Score: 150},
	}, entries)
}

func TestGame_Finalize(t *testing.T) {
	now := time.Now().UTC()

	admin := player()
	g := game(admin, 25)

	p1 := player()
	p2 := player()
	p3 := player()
	p4 := player()

	assert.NoError(t, g.SubmitScore(cbg, p1.ID, 300))
	assert.NoError(t, g.SubmitScore(cbg, p2.ID, 100))
	assert.NoError(t, g.SubmitScore(cbg, p3.ID, 200))
	assert.NoError(t, g.SubmitScore(cbg, p4.ID, 50))

	notAdmin := player()
	board, err := g.Finalize(cbg, notAdmin.ID, now)
	assert.Equal(t, hilo.ErrUnauthorized, err)
	assert.Nil(t, board)

	board, err = g.Finalize(cbg, admin.ID, now)
	assert.NoError(t, err)
	assert.Equal(t, []hilo.Entry{
		{PlayerID: p1.ID, Score: 300},
		{PlayerID: p3.ID, Score: 200},
		{PlayerID: p2.ID, Score: 100},
	}, board)
	assert.True(t, g.Finalized)
	assert.NotNil(t, g.FinalizedAt)

	board, err = g.Finalize(cbg, admin.ID, now)
	assert.Equal(t, hilo.ErrAlreadyFinalized, err)
	assert.Nil(t, board)

	g2, _ := GetGameByUUID(cbg, g.UUID)
	assert.True(t, g2.Finalized)
	assert.NotNil(t, g2.FinalizedAt)

	stored, err := g2.Leaderboard(cbg)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(stored))
	assert.Equal(t, p1.ID, stored[0].PlayerID)
}

func TestGame_ClaimPrize(t *testing.T) {
	// postgres timestamps carry microseconds, and the boundary claim below
	// compares against the round-tripped finalized_at
	now := time.Now().UTC().Truncate(time.Microsecond)

	admin := player()
	g := game(admin, 25)

	p1 := fundedPlayer(25)
	p2 := fundedPlayer(25)
	p3 := fundedPlayer(25)
	p4 := fundedPlayer(25)
	for _, p := range []*Player{p1, p2, p3, p4} {
		_, err := p.JoinGame(cbg, g)
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(100), g.Pool)

	assert.NoError(t, g.SubmitScore(cbg, p1.ID, 300))
	assert.NoError(t, g.SubmitScore(cbg, p2.ID, 200))
	assert.NoError(t, g.SubmitScore(cbg, p3.ID, 100))

	// claims before the finalize are refused
	claim, err := g.ClaimPrize(cbg, p1, 0, now)
	assert.Equal(t, hilo.ErrPrizeWindowExpired, err)
	assert.Nil(t, claim)

	_, err = g.Finalize(cbg, admin.ID, now)
	assert.NoError(t, err)

	// only the position holder may claim it
	claim, err = g.ClaimPrize(cbg, p2, 0, now)
	assert.Equal(t, hilo.ErrNotOnLeaderboard, err)
	assert.Nil(t, claim)

	claim, err = g.ClaimPrize(cbg, p1, 0, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(50), claim.Amount)
	assert.Equal(t, int64(50), g.Pool)

	wallet, _ := GetWallet(cbg, p1.ID)
	assert.Equal(t, int64(50), wallet.Balance)

	claim, err = g.ClaimPrize(cbg, p1, 0, now)
	assert.Equal(t, ErrPrizeAlreadyClaimed, err)
	assert.Nil(t, claim)

	// second place gets 30% of what remains after the first claim
	claim, err = g.ClaimPrize(cbg, p2, 1, now.Add(hilo.ClaimWindow))
	assert.NoError(t, err)
	assert.Equal(t, int64(15), claim.Amount)

	claim, err = g.ClaimPrize(cbg, p3, 2, now.Add(hilo.ClaimWindow).Add(time.Second))
	assert.Equal(t, hilo.ErrPrizeWindowExpired, err)
	assert.Nil(t, claim)

	claim, err = g.ClaimPrize(cbg, p4, 3, now)
	assert.Equal(t, hilo.ErrNotOnLeaderboard, err)
	assert.Nil(t, claim)

	g2, _ := GetGameByUUID(cbg, g.UUID)
	assert.Equal(t, int64(35), g2.Pool)
}

func TestGame_ResetDailyRounds(t *testing.T) {
	admin := player()
	g := game(admin, 25)

	p := fundedPlayer(25)
	session, err := p.JoinGame(cbg, g)
	assert.NoError(t, err)

	engine, err := session.Engine()
	assert.NoError(t, err)
	engine.DailyRounds = hilo.DailyRoundLimit
	assert.NoError(t, session.Save(cbg, engine))

	count, err := g.ResetDailyRounds(cbg)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	session, err = GetSession(cbg, g.UUID, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, session.DailyRounds)
}
