package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"math/rand"
)

// ErrEndOfDeck is returned when drawing or peeking past the last card
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents a playing deck consumed from the front
type Deck struct {
	Cards []*Card `json:"cards"`
}

// New returns a new deck of cards in canonical order: hearts, diamonds,
// clubs, spades, with ranks ascending from 2 through the ace (14).
// Call Shuffle() to derive a playable order from a randomness value
func New() *Deck {
	d := &Deck{}
	d.buildDeck()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, 52)
	for _, suit := range []Suit{Hearts, Diamonds, Clubs, Spades} {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle rebuilds the canonical deck and permutes it using only the
// provided value. The same value always produces the same order, so the
// deck can be independently reconstructed from the stored randomness
func (d *Deck) Shuffle(value uint64) {
	d.buildDeck()

	rng := rand.New(rand.NewSource(int64(value))) // nolint:gosec
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash of the deck order, computed over the same
// encoding the deck is persisted in.
// Clients may hold the hash as a commitment without learning the order
func (d *Deck) HashCode() string {
	hash := sha1.Sum([]byte(CardsToString(d.Cards))) // nolint:gosec
	return hex.EncodeToString(hash[:])
}

// Peek returns the next card without drawing it
func (d *Deck) Peek() (*Card, error) {
	if len(d.Cards) == 0 {
		return nil, ErrEndOfDeck
	}

	return d.Cards[0], nil
}

// Draw removes and returns the next card.
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card
func (d *Deck) Draw() (*Card, error) {
	card, err := d.Peek()
	if err != nil {
		return nil, err
	}

	d.Cards = d.Cards[1:]

	return card, nil
}

// CanDraw returns true if at least want cards remain
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
