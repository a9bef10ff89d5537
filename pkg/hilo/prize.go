package hilo

import (
	"math"
	"time"
)

// ClaimWindow is how long after finalization prizes remain claimable
const ClaimWindow = 72 * time.Hour

// prizePercent is the fixed payout schedule. It intentionally covers only
// the top three positions regardless of the configured capacity
func prizePercent(position int) (int64, error) {
	switch position {
	case 0:
		return 50, nil
	case 1:
		return 30, nil
	case 2:
		return 20, nil
	}

	return 0, ErrNotOnLeaderboard
}

// prizeAmount computes floor(pool * percent / 100) with an overflow guard
func prizeAmount(pool, percent int64) (int64, error) {
	if pool > math.MaxInt64/percent {
		return 0, ErrArithmetic
	}

	return pool * percent / 100, nil
}

// ClaimPrize validates a claim for the given leaderboard position and, when
// valid, debits the pool and returns the amount to credit the winner. All
// preconditions run before the pool mutates.
//
// The same ErrPrizeWindowExpired covers both a board that was never
// finalized and a claim arriving after the window closes. A claim at
// exactly FinalizedAt plus ClaimWindow is still accepted
func (s *State) ClaimPrize(position int, now time.Time) (int64, error) {
	if !s.Finalized {
		return 0, ErrPrizeWindowExpired
	}

	if now.After(s.FinalizedAt.Add(ClaimWindow)) {
		return 0, ErrPrizeWindowExpired
	}

	if position < 0 || position >= len(s.Leaderboard) {
		return 0, ErrNotOnLeaderboard
	}

	percent, err := prizePercent(position)
	if err != nil {
		return 0, err
	}

	amount, err := prizeAmount(s.Pool, percent)
	if err != nil {
		return 0, err
	}

	s.Pool -= amount

	return amount, nil
}
