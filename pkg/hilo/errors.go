package hilo

import "errors"

// errors returned by the game engine. Handlers are expected to match on
// these with errors.Is when deciding how to respond
var (
	// ErrInvalidStartTime is an error when a game window starts at or after its end
	ErrInvalidStartTime = errors.New("start time must be before end time")

	// ErrInvalidEntryFee is an error when the entry fee is zero or negative
	ErrInvalidEntryFee = errors.New("entry fee must be greater than zero")

	// ErrDailyLimitReached is an error when a player starts more rounds than the daily cap
	ErrDailyLimitReached = errors.New("daily round limit reached")

	// ErrRandomnessAlreadyReceived is an error when randomness is delivered to a session twice
	ErrRandomnessAlreadyReceived = errors.New("randomness already received")

	// ErrBetTimeExpired is an error when a bet arrives after the betting window closes
	ErrBetTimeExpired = errors.New("bet placement time expired")

	// ErrGameOver signals a terminal round. It is not a fault: the session's
	// finished transition still commits when it is returned from a bet
	ErrGameOver = errors.New("game over")

	// ErrPrizeWindowExpired is an error when a claim arrives before the
	// leaderboard is finalized or after the claim window closes
	ErrPrizeWindowExpired = errors.New("prize window expired")

	// ErrNotOnLeaderboard is an error when a claim names a position that pays nothing
	ErrNotOnLeaderboard = errors.New("not on leaderboard")

	// ErrArithmetic is an error when prize math would overflow
	ErrArithmetic = errors.New("arithmetic overflow")

	// ErrUnauthorized is an error when a caller other than the game admin finalizes
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyFinalized is an error when the leaderboard is finalized twice
	ErrAlreadyFinalized = errors.New("leaderboard already finalized")

	// ErrRoundInProgress is an error when a score is submitted while the round can still be played
	ErrRoundInProgress = errors.New("round still in progress")

	// ErrOutsideGameWindow is an error when a player joins outside the game window
	ErrOutsideGameWindow = errors.New("outside the game window")
)
