package model

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vilass86/cardgame/pkg/db"
)

// querier is the subset of *sql.DB and *sql.Tx the model queries need
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}

// Wallet is a player's spendable balance
type Wallet struct {
	PlayerID int64     `json:"playerId"`
	Balance  int64     `json:"balance"`
	Updated  time.Time `json:"updated"`
}

// GetWallet returns the player's wallet. Players who never moved money
// get a zero-balance wallet
func GetWallet(ctx context.Context, playerID int64) (*Wallet, error) {
	const query = `
SELECT wallets.player_id, wallets.balance, wallets.updated
FROM wallets
WHERE player_id = $1`

	var wallet Wallet
	if err := db.Instance().QueryRowContext(ctx, query, playerID).Scan(&wallet.PlayerID, &wallet.Balance, &wallet.Updated); err != nil {
		if err == sql.ErrNoRows {
			return &Wallet{PlayerID: playerID}, nil
		}

		return nil, err
	}

	return &wallet, nil
}

// AdjustWallet moves amount through the player's wallet and returns the new
// balance. A negative amount that would overdraw the wallet returns
// ErrInsufficientFunds. Every adjustment leaves a wallet_ledger row
func AdjustWallet(ctx context.Context, playerID, amount int64, gameUUID *string, reason string) (int64, error) {
	return adjustWallet(ctx, db.Instance(), playerID, amount, gameUUID, reason)
}

func adjustWallet(ctx context.Context, q querier, playerID, amount int64, gameUUID *string, reason string) (int64, error) {
	const query = `SELECT adjust_wallet($1, $2, $3, $4)`

	var balance int64
	if err := q.QueryRowContext(ctx, query, playerID, amount, gameUUID, reason).Scan(&balance); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqCheckViolationErrorCode {
			return 0, ErrInsufficientFunds
		}

		return 0, err
	}

	return balance, nil
}
