package hilo

import (
	"math"
	"time"

	"github.com/vilass86/cardgame/pkg/deck"
)

// game constants
const (
	// DailyRoundLimit is the number of rounds a player may start per day.
	// The counter resets externally, not by the engine
	DailyRoundLimit = 10

	// BetWindow is how long after StartRound a bet will still be accepted
	BetWindow = time.Minute
)

// Session is one player's run through a shuffled deck within a game. All
// time-sensitive operations take an explicit now so the engine itself never
// consults a clock
type Session struct {
	PlayerID     int64
	RoundID      int64
	StartedAt    time.Time
	Multiplier   float64
	SideBetScore int64
	Deck         *deck.Deck
	DailyRounds  int
	Finished     bool

	// Randomness is set exactly once via ReceiveRandomness. nil means the
	// oracle has not answered yet and the session has no deck
	Randomness *uint64
}

// NewSession returns a session awaiting randomness
func NewSession(playerID int64) *Session {
	return &Session{
		PlayerID:   playerID,
		Multiplier: 1.0,
	}
}

// ReceiveRandomness stores the oracle's value and derives the session deck
// from it. A session accepts randomness exactly once; later deliveries fail
// with ErrRandomnessAlreadyReceived and leave the deck untouched
func (s *Session) ReceiveRandomness(value uint64) error {
	if s.Randomness != nil {
		return ErrRandomnessAlreadyReceived
	}

	s.Randomness = &value

	d := deck.New()
	d.Shuffle(value)
	s.Deck = d

	return nil
}

// StartRound begins a fresh round: the multiplier and finished flag reset,
// the clock restarts. The side bet score and the deck deliberately carry
// over from previous rounds. Fails with ErrDailyLimitReached once the
// player has started DailyRoundLimit rounds since the last external reset
func (s *Session) StartRound(roundID int64, now time.Time) error {
	if s.DailyRounds >= DailyRoundLimit {
		return ErrDailyLimitReached
	}

	s.DailyRounds++
	s.RoundID = roundID
	s.StartedAt = now
	s.Multiplier = 1.0
	s.Finished = false

	return nil
}

// PlaceBet resolves one bet against the deck.
//
// A finished session refuses further bets with ErrGameOver and nothing
// mutates. A bet placed more than BetWindow after StartRound fails with
// ErrBetTimeExpired and nothing mutates. Otherwise the deck always loses a
// card: a correct outcome multiplies the running multiplier by the gain and
// applies any side bet delta; an incorrect outcome, or a deck with no next
// card to compare, latches Finished and returns ErrGameOver. Callers must
// persist the session even when ErrGameOver is returned, since the finished
// transition is a committed state change, not a rollback
func (s *Session) PlaceBet(direction Direction, sideBet *SideBet, now time.Time) (*Outcome, error) {
	if s.Finished {
		return nil, ErrGameOver
	}

	if now.Sub(s.StartedAt) > BetWindow {
		return nil, ErrBetTimeExpired
	}

	outcome, err := s.resolveBet(direction, sideBet)
	if err != nil {
		s.Finished = true
		return nil, err
	}

	if !outcome.Correct {
		s.Finished = true
		return outcome, ErrGameOver
	}

	s.Multiplier *= outcome.Gain
	if outcome.SideBetDelta != nil {
		s.SideBetScore += int64(*outcome.SideBetDelta)
	}

	return outcome, nil
}

// TimedOut returns true once the bet window for the current round has
// passed. A session that never started a round is not timed out
func (s *Session) TimedOut(now time.Time) bool {
	return !s.StartedAt.IsZero() && now.Sub(s.StartedAt) > BetWindow
}

// Score is the leaderboard score for the session: the running multiplier in
// hundredths plus the accumulated side bet score, clamped at zero. Scores
// saturate at MaxInt64 so a long streak cannot wrap the conversion
func (s *Session) Score() uint64 {
	score := math.Round(s.Multiplier*100) + float64(s.SideBetScore)
	if score <= 0 {
		return 0
	}

	if score >= float64(math.MaxInt64) {
		return math.MaxInt64
	}

	return uint64(score)
}

// SubmitScore returns the score once the round is frozen, meaning the
// session finished or the bet window lapsed. While the round can still be
// played it fails with ErrRoundInProgress
func (s *Session) SubmitScore(now time.Time) (uint64, error) {
	if !s.Finished && !s.TimedOut(now) {
		return 0, ErrRoundInProgress
	}

	return s.Score(), nil
}

// TopCard returns the card the next bet will be scored against, or nil
// before randomness arrives or after the deck is exhausted
func (s *Session) TopCard() *deck.Card {
	if s.Deck == nil {
		return nil
	}

	card, err := s.Deck.Peek()
	if err != nil {
		return nil
	}

	return card
}

// CardsLeft returns the number of undrawn cards, or zero before randomness arrives
func (s *Session) CardsLeft() int {
	if s.Deck == nil {
		return 0
	}

	return s.Deck.CardsLeft()
}
