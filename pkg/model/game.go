package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/vilass86/cardgame/pkg/db"
	"github.com/vilass86/cardgame/pkg/hilo"
)

const gameColumns = `
games.uuid,
games.admin_id,
games.entry_fee,
games.window_start,
games.window_end,
games.leaderboard_capacity,
games.finalized,
games.finalized_at,
games.pool,
games.created,
games.updated`

// Game is a record in the games table
type Game struct {
	UUID                string     `json:"uuid"`
	AdminID             int64      `json:"adminId"`
	EntryFee            int64      `json:"entryFee"`
	WindowStart         time.Time  `json:"windowStart"`
	WindowEnd           time.Time  `json:"windowEnd"`
	LeaderboardCapacity int        `json:"leaderboardCapacity"`
	Finalized           bool       `json:"finalized"`
	FinalizedAt         *time.Time `json:"finalizedAt,omitempty"`
	Pool                int64      `json:"pool"`
	Created             time.Time  `json:"created"`
	Updated             time.Time  `json:"updated"`
}

func getGameByRow(row db.Scanner) (*Game, error) {
	var game Game
	var finalizedAt sql.NullTime
	if err := row.Scan(
		&game.UUID,
		&game.AdminID,
		&game.EntryFee,
		&game.WindowStart,
		&game.WindowEnd,
		&game.LeaderboardCapacity,
		&game.Finalized,
		&finalizedAt,
		&game.Pool,
		&game.Created,
		&game.Updated,
	); err != nil {
		return nil, err
	}

	if finalizedAt.Valid {
		game.FinalizedAt = &finalizedAt.Time
	}

	return &game, nil
}

// CreateGame creates a new game from a validated config
func CreateGame(ctx context.Context, config *hilo.Config) (*Game, error) {
	const query = `
INSERT INTO games (uuid, admin_id, entry_fee, window_start, window_end, leaderboard_capacity)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + gameColumns

	row := db.Instance().QueryRowContext(ctx, query,
		uuid.New().String(),
		config.AdminID,
		config.EntryFee,
		config.WindowStart,
		config.WindowEnd,
		config.LeaderboardCapacity,
	)

	return getGameByRow(row)
}

// GetGameByUUID returns a game by its UUID
func GetGameByUUID(ctx context.Context, gameUUID string) (*Game, error) {
	const query = `
SELECT ` + gameColumns + `
FROM games
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, gameUUID)
	return getGameByRow(row)
}

// GetGames returns a page of games, most recently created first
func GetGames(ctx context.Context, start int64, rows int) ([]*Game, error) {
	const query = `
SELECT ` + gameColumns + `
FROM games
ORDER BY created DESC, uuid
OFFSET $1 LIMIT $2`

	dbRows, err := db.Instance().QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}

	defer dbRows.Close()

	games := make([]*Game, 0)
	for dbRows.Next() {
		game, err := getGameByRow(dbRows)
		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	return games, nil
}

// Config returns the core config for the game
func (g *Game) Config() *hilo.Config {
	return &hilo.Config{
		AdminID:             g.AdminID,
		EntryFee:            g.EntryFee,
		WindowStart:         g.WindowStart,
		WindowEnd:           g.WindowEnd,
		LeaderboardCapacity: g.LeaderboardCapacity,
	}
}

// State assembles the core game state from the record and the stored leaderboard
func (g *Game) State(ctx context.Context) (*hilo.State, error) {
	board, err := g.Leaderboard(ctx)
	if err != nil {
		return nil, err
	}

	state := &hilo.State{
		Config:      g.Config(),
		Leaderboard: board,
		Finalized:   g.Finalized,
		Pool:        g.Pool,
	}

	if g.FinalizedAt != nil {
		state.FinalizedAt = *g.FinalizedAt
	}

	return state, nil
}

// Leaderboard returns the frozen leaderboard in position order. Games that
// were never finalized have an empty board
func (g *Game) Leaderboard(ctx context.Context) ([]hilo.Entry, error) {
	return leaderboardEntries(ctx, db.Instance(), g.UUID)
}

func leaderboardEntries(ctx context.Context, q querier, gameUUID string) ([]hilo.Entry, error) {
	const query = `
SELECT player_id, score
FROM leaderboard_entries
WHERE game_uuid = $1
ORDER BY position`

	rows, err := q.QueryContext(ctx, query, gameUUID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	entries := make([]hilo.Entry, 0)
	for rows.Next() {
		var entry hilo.Entry
		var score int64
		if err := rows.Scan(&entry.PlayerID, &score); err != nil {
			return nil, err
		}

		entry.Score = uint64(score)
		entries = append(entries, entry)
	}

	return entries, nil
}

// Finalize ranks the submitted scores, freezes the leaderboard, and flips the
// one-way finalized latch. Only the game admin may call it
func (g *Game) Finalize(ctx context.Context, callerID int64, now time.Time) ([]hilo.Entry, error) {
	entries, err := ScoreEntries(ctx, g.UUID)
	if err != nil {
		return nil, err
	}

	state, err := g.State(ctx)
	if err != nil {
		return nil, err
	}

	if err := state.FinalizeLeaderboard(callerID, entries, now); err != nil {
		return nil, err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	// the NOT finalized guard keeps a concurrent finalize from racing past
	// the in-memory latch check
	const query = `
UPDATE games
SET finalized = true, finalized_at = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $2 AND NOT finalized
RETURNING updated`

	var updated time.Time
	if err := tx.QueryRowContext(ctx, query, now, g.UUID).Scan(&updated); err != nil {
		rollback(tx)
		if err == sql.ErrNoRows {
			return nil, hilo.ErrAlreadyFinalized
		}

		return nil, err
	}

	const insertQuery = `
INSERT INTO leaderboard_entries (game_uuid, position, player_id, score)
VALUES ($1, $2, $3, $4)`

	for position, entry := range state.Leaderboard {
		if _, err := tx.ExecContext(ctx, insertQuery, g.UUID, position, entry.PlayerID, int64(entry.Score)); err != nil {
			rollback(tx)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	finalizedAt := state.FinalizedAt
	g.Finalized = true
	g.FinalizedAt = &finalizedAt
	g.Updated = updated

	return state.Leaderboard, nil
}

// ResetDailyRounds zeroes the daily round counters for every session in the
// game and returns the number of sessions reset
func (g *Game) ResetDailyRounds(ctx context.Context) (int64, error) {
	const query = `
UPDATE sessions
SET daily_rounds = 0, updated = (NOW() AT TIME ZONE 'utc')
WHERE game_uuid = $1`

	res, err := db.Instance().ExecContext(ctx, query, g.UUID)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
