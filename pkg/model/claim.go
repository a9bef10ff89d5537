package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/vilass86/cardgame/pkg/db"
	"github.com/vilass86/cardgame/pkg/hilo"
)

const claimColumns = `
claims.id,
claims.game_uuid,
claims.position,
claims.player_id,
claims.amount,
claims.created`

// Claim is a record in the claims table
type Claim struct {
	ID       int64     `json:"id"`
	GameUUID string    `json:"gameUuid"`
	Position int       `json:"position"`
	PlayerID int64     `json:"playerId"`
	Amount   int64     `json:"amount"`
	Created  time.Time `json:"created"`
}

func getClaimByRow(row db.Scanner) (*Claim, error) {
	var claim Claim
	if err := row.Scan(
		&claim.ID,
		&claim.GameUUID,
		&claim.Position,
		&claim.PlayerID,
		&claim.Amount,
		&claim.Created,
	); err != nil {
		return nil, err
	}

	return &claim, nil
}

// ClaimPrize pays the player their finalized leaderboard position. The pool
// debit and the wallet credit commit in one transaction, with the games row
// locked so concurrent claims serialize against the pool
func (g *Game) ClaimPrize(ctx context.Context, player *Player, position int, now time.Time) (*Claim, error) {
	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const lockQuery = `
SELECT pool, finalized, finalized_at
FROM games
WHERE uuid = $1
FOR UPDATE`

	var pool int64
	var finalized bool
	var finalizedAt sql.NullTime
	if err := tx.QueryRowContext(ctx, lockQuery, g.UUID).Scan(&pool, &finalized, &finalizedAt); err != nil {
		rollback(tx)
		return nil, err
	}

	board, err := leaderboardEntries(ctx, tx, g.UUID)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	state := &hilo.State{
		Config:      g.Config(),
		Leaderboard: board,
		Finalized:   finalized,
		Pool:        pool,
	}

	if finalizedAt.Valid {
		state.FinalizedAt = finalizedAt.Time
	}

	amount, err := state.ClaimPrize(position, now)
	if err != nil {
		rollback(tx)
		return nil, err
	}

	if board[position].PlayerID != player.ID {
		rollback(tx)
		return nil, hilo.ErrNotOnLeaderboard
	}

	const insertQuery = `
INSERT INTO claims (game_uuid, position, player_id, amount)
VALUES ($1, $2, $3, $4)
RETURNING ` + claimColumns

	claim, err := getClaimByRow(tx.QueryRowContext(ctx, insertQuery, g.UUID, position, player.ID, amount))
	if err != nil {
		rollback(tx)
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrPrizeAlreadyClaimed
		}

		return nil, err
	}

	const poolQuery = `
UPDATE games
SET pool = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $2`

	if _, err := tx.ExecContext(ctx, poolQuery, state.Pool, g.UUID); err != nil {
		rollback(tx)
		return nil, err
	}

	if _, err := adjustWallet(ctx, tx, player.ID, amount, &g.UUID, "prize claim"); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	g.Pool = state.Pool
	return claim, nil
}
