package hilo

import (
	"fmt"

	"github.com/vilass86/cardgame/pkg/deck"
)

// Direction is the main bet: will the next card rank higher or lower
type Direction string

// direction constants
const (
	High Direction = "high"
	Low  Direction = "low"
)

// Valid returns true if the direction is one of the known constants
func (d Direction) Valid() bool {
	return d == High || d == Low
}

// SideBetKind discriminates the optional side bet
type SideBetKind string

// side bet kinds
const (
	SideBetColor  SideBetKind = "color"
	SideBetParity SideBetKind = "parity"
)

// SideBet is an optional prediction about the current card, resolved
// independently of the high/low outcome. Color predicts red or black,
// parity predicts an even or odd rank
type SideBet struct {
	Kind SideBetKind `json:"kind"`

	// Red is the color prediction. Only read when Kind is SideBetColor
	Red bool `json:"red"`

	// Even is the parity prediction. Only read when Kind is SideBetParity
	Even bool `json:"even"`
}

// Validate returns an error if the side bet kind is unknown
func (b *SideBet) Validate() error {
	switch b.Kind {
	case SideBetColor, SideBetParity:
		return nil
	}

	return fmt.Errorf("unknown side bet kind: %s", b.Kind)
}

// delta scores the side bet against the current card: +1 on a match, -1 otherwise
func (b *SideBet) delta(card *deck.Card) int {
	var match bool
	switch b.Kind {
	case SideBetColor:
		match = b.Red == card.IsRed()
	case SideBetParity:
		match = b.Even == card.IsEvenRank()
	default:
		panic(fmt.Sprintf("unknown side bet kind: %s", b.Kind))
	}

	if match {
		return 1
	}

	return -1
}
