package model

import (
	"errors"

	"github.com/lib/pq"
)

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"
const pqCheckViolationErrorCode pq.ErrorCode = "23514"

// ErrDuplicateKey happens if an insert violates a unique constraint
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrInvalidEmailOrPassword is an error for an invalid email or password
var ErrInvalidEmailOrPassword = UserError("invalid email address and/or password")

// ErrAccountNotActive is an error if the player is blocked or deleted
var ErrAccountNotActive = UserError("account is not active")

// ErrInsufficientFunds is an error when a debit would overdraw a wallet
var ErrInsufficientFunds = UserError("insufficient funds")

// ErrPlayerNotInGame happens when the player never joined the game
var ErrPlayerNotInGame = errors.New("player has not joined the game")

// ErrAlreadyJoined happens when a player buys into the same game twice
var ErrAlreadyJoined = UserError("player already joined the game")

// ErrPrizeAlreadyClaimed happens when a leaderboard position is paid twice
var ErrPrizeAlreadyClaimed = UserError("prize already claimed")
