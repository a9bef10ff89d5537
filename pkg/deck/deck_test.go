package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vilass86/cardgame/pkg/snapshot"
)

func TestNewDeck(t *testing.T) {
	deck := New()

	assert.Equal(t, 52, deck.CardsLeft())

	assert.Equal(t, Card{Rank: 2, Suit: Hearts}, *deck.Cards[0])

	assert.Equal(t, Card{Rank: 14, Suit: Hearts}, *deck.Cards[12])

	assert.Equal(t, Card{Rank: 2, Suit: Diamonds}, *deck.Cards[13])

	assert.Equal(t, Card{Rank: 14, Suit: Spades}, *deck.Cards[51])

	// two unshuffled decks are identical
	assert.Equal(t, deck.HashCode(), New().HashCode())
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	d1 := New()
	d1.Shuffle(12345)

	d2 := New()
	d2.Shuffle(12345)

	a.Equal(CardsToString(d1.Cards), CardsToString(d2.Cards))
	a.Equal(d1.HashCode(), d2.HashCode())

	d3 := New()
	d3.Shuffle(12346)
	a.NotEqual(d1.HashCode(), d3.HashCode())

	// shuffling always starts over from the canonical deck
	d1.Shuffle(12345)
	a.Equal(d2.HashCode(), d1.HashCode())
	a.Equal(52, d1.CardsLeft())
}

// Sessions rebuild their deck from the stored randomness, so the permutation
// a value produces must never change between releases
func TestDeck_Shuffle_stableOrder(t *testing.T) {
	d := New()
	d.Shuffle(12345)
	snapshot.Validate(t, "shuffle-12345", CardsToString(d.Cards))

	d.Shuffle(18446744073709551615)
	snapshot.Validate(t, "shuffle-max-uint64", CardsToString(d.Cards))
}

func TestDeck_Shuffle_isPermutation(t *testing.T) {
	a := assert.New(t)

	d := New()
	d.Shuffle(98765)
	a.Equal(52, d.CardsLeft())

	seen := make(map[string]bool)
	for _, card := range d.Cards {
		seen[CardToString(card)] = true
	}

	a.Equal(52, len(seen))
}

func TestDeck_Draw(t *testing.T) {
	deck := New()

	if !deck.CanDraw(52) {
		t.Errorf("expected CanDraw(52) to be true")
	}

	if deck.CanDraw(53) {
		t.Errorf("expected CanDraw(53) to be false")
	}

	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		if card == nil {
			t.Error("expected card, got nil")
		}

		if err != nil {
			t.Errorf("expected err to be nil, got %v", err)
		}
	}

	if deck.CanDraw(1) {
		t.Errorf("expected CanDraw(1) to be false")
	}

	card, err := deck.Draw()
	if card != nil {
		t.Errorf("expected card to be nil, got %#v", card)
	}

	if err != ErrEndOfDeck {
		t.Errorf("expected err to be ErrEndOfDeck, got %#v", err)
	}

	deck.Shuffle(1)
	if !deck.CanDraw(52) {
		t.Errorf("expected Shuffle() to rebuild the deck")
	}
}

func TestDeck_Peek(t *testing.T) {
	a := assert.New(t)

	d := New()
	d.Cards = CardsFromString("2c,3h")

	card, err := d.Peek()
	a.NoError(err)
	a.True(card.Equal(CardFromString("2c")))
	a.Equal(2, d.CardsLeft())

	drawn, err := d.Draw()
	a.NoError(err)
	a.True(drawn.Equal(card))

	card, err = d.Peek()
	a.NoError(err)
	a.True(card.Equal(CardFromString("3h")))

	_, _ = d.Draw()

	card, err = d.Peek()
	a.Nil(card)
	a.Equal(ErrEndOfDeck, err)
}
