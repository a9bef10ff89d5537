package hilo

import (
	"github.com/vilass86/cardgame/pkg/deck"
)

// Outcome is the result of resolving a single bet. Current is the card the
// bet was scored against and Next is the card it was compared to, which
// stays on top of the deck for the following turn
type Outcome struct {
	Correct      bool       `json:"correct"`
	Current      *deck.Card `json:"current"`
	Next         *deck.Card `json:"next"`
	Gain         float64    `json:"gain"`
	SideBetDelta *int       `json:"sideBetDelta,omitempty"`
}

// resolveBet consumes the top card and compares it against the new top of
// the deck. The deck loses a card on every resolved call regardless of the
// outcome. Multiplier, side bet score, and the finished flag are never
// touched here. That is PlaceBet's job
func (s *Session) resolveBet(direction Direction, sideBet *SideBet) (*Outcome, error) {
	if s.Deck == nil || s.Deck.CardsLeft() == 0 {
		return nil, ErrGameOver
	}

	current, err := s.Deck.Draw()
	if err != nil {
		return nil, ErrGameOver
	}

	next, err := s.Deck.Peek()
	if err != nil {
		// the bet consumed the final card, so there is nothing to compare against
		return nil, ErrGameOver
	}

	var correct bool
	switch direction {
	case High:
		correct = next.Rank > current.Rank
	case Low:
		correct = next.Rank < current.Rank
	}

	outcome := &Outcome{
		Correct: correct,
		Current: current,
		Next:    next,
		Gain:    Gain(current.Rank, direction),
	}

	if sideBet != nil {
		delta := sideBet.delta(current)
		outcome.SideBetDelta = &delta
	}

	return outcome, nil
}
