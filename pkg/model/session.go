package model

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/vilass86/cardgame/pkg/db"
	"github.com/vilass86/cardgame/pkg/deck"
	"github.com/vilass86/cardgame/pkg/hilo"
)

const sessionColumns = `
sessions.id,
sessions.game_uuid,
sessions.player_id,
sessions.round_id,
sessions.started_at,
sessions.multiplier,
sessions.side_bet_score,
sessions.randomness,
sessions.deck,
sessions.daily_rounds,
sessions.finished,
sessions.created,
sessions.updated`

// Session is a record in the sessions table. The randomness and deck columns
// never leave the server because the deck order decides every bet
type Session struct {
	ID           int64      `json:"id"`
	GameUUID     string     `json:"gameUuid"`
	PlayerID     int64      `json:"playerId"`
	RoundID      int64      `json:"roundId"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	Multiplier   float64    `json:"multiplier"`
	SideBetScore int64      `json:"sideBetScore"`
	randomness   sql.NullString
	deck         sql.NullString
	DailyRounds  int       `json:"dailyRounds"`
	Finished     bool      `json:"finished"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getSessionByRow(row db.Scanner) (*Session, error) {
	var session Session
	var startedAt sql.NullTime
	if err := row.Scan(
		&session.ID,
		&session.GameUUID,
		&session.PlayerID,
		&session.RoundID,
		&startedAt,
		&session.Multiplier,
		&session.SideBetScore,
		&session.randomness,
		&session.deck,
		&session.DailyRounds,
		&session.Finished,
		&session.Created,
		&session.Updated,
	); err != nil {
		return nil, err
	}

	if startedAt.Valid {
		session.StartedAt = &startedAt.Time
	}

	return &session, nil
}

// JoinGame buys the player into the game. The entry fee moves from the
// player's wallet into the prize pool and the session row is created, all in
// one transaction
func (p *Player) JoinGame(ctx context.Context, game *Game) (*Session, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	if _, err := adjustWallet(ctx, tx, p.ID, -game.EntryFee, &game.UUID, "entry fee"); err != nil {
		rollback(tx)
		return nil, err
	}

	const poolQuery = `
UPDATE games
SET pool = pool + $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $2
RETURNING pool`

	var pool int64
	if err := tx.QueryRowContext(ctx, poolQuery, game.EntryFee, game.UUID).Scan(&pool); err != nil {
		rollback(tx)
		return nil, err
	}

	const query = `
INSERT INTO sessions (game_uuid, player_id)
VALUES ($1, $2)
RETURNING ` + sessionColumns

	session, err := getSessionByRow(tx.QueryRowContext(ctx, query, game.UUID, p.ID))
	if err != nil {
		rollback(tx)
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrAlreadyJoined
		}

		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	game.Pool = pool
	return session, nil
}

// GetSession returns the player's session in the game
func GetSession(ctx context.Context, gameUUID string, playerID int64) (*Session, error) {
	const query = `
SELECT ` + sessionColumns + `
FROM sessions
WHERE game_uuid = $1 AND player_id = $2`

	row := db.Instance().QueryRowContext(ctx, query, gameUUID, playerID)

	session, err := getSessionByRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotInGame
		}

		return nil, err
	}

	return session, nil
}

// Engine reconstructs the core engine state from the record
func (s *Session) Engine() (*hilo.Session, error) {
	engine := &hilo.Session{
		PlayerID:     s.PlayerID,
		RoundID:      s.RoundID,
		Multiplier:   s.Multiplier,
		SideBetScore: s.SideBetScore,
		DailyRounds:  s.DailyRounds,
		Finished:     s.Finished,
	}

	if s.StartedAt != nil {
		engine.StartedAt = *s.StartedAt
	}

	if s.randomness.Valid {
		value, err := strconv.ParseUint(s.randomness.String, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse randomness: %w", err)
		}

		engine.Randomness = &value
		engine.Deck = &deck.Deck{Cards: deck.CardsFromString(s.deck.String)}
	}

	return engine, nil
}

// Save persists the engine state back onto the session row
func (s *Session) Save(ctx context.Context, engine *hilo.Session) error {
	var startedAt *time.Time
	if !engine.StartedAt.IsZero() {
		t := engine.StartedAt
		startedAt = &t
	}

	var randomness, deckCards sql.NullString
	if engine.Randomness != nil {
		randomness = sql.NullString{String: strconv.FormatUint(*engine.Randomness, 10), Valid: true}
		deckCards = sql.NullString{String: deck.CardsToString(engine.Deck.Cards), Valid: true}
	}

	const query = `
UPDATE sessions
SET round_id = $1, started_at = $2, multiplier = $3, side_bet_score = $4, randomness = $5, deck = $6,
    daily_rounds = $7, finished = $8, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $9
RETURNING updated`

	var updated time.Time
	if err := db.Instance().QueryRowContext(ctx, query,
		engine.RoundID,
		startedAt,
		engine.Multiplier,
		engine.SideBetScore,
		randomness,
		deckCards,
		engine.DailyRounds,
		engine.Finished,
		s.ID,
	).Scan(&updated); err != nil {
		return err
	}

	s.RoundID = engine.RoundID
	s.StartedAt = startedAt
	s.Multiplier = engine.Multiplier
	s.SideBetScore = engine.SideBetScore
	s.randomness = randomness
	s.deck = deckCards
	s.DailyRounds = engine.DailyRounds
	s.Finished = engine.Finished
	s.Updated = updated
	return nil
}

// HasRandomness reports whether the session already received its randomness
func (s *Session) HasRandomness() bool {
	return s.randomness.Valid
}

// CardsLeft returns the number of cards remaining in the stored deck
func (s *Session) CardsLeft() int {
	if !s.deck.Valid {
		return 0
	}

	return len(deck.CardsFromString(s.deck.String))
}
