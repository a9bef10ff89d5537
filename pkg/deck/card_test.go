package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
}

func TestCard_String(t *testing.T) {
	for expects, card := range map[string]Card{
		"2♡":  {Rank: 2, Suit: Hearts},
		"10♢": {Rank: 10, Suit: Diamonds},
		"J♣":  {Rank: Jack, Suit: Clubs},
		"Q♢":  {Rank: Queen, Suit: Diamonds},
		"K♠":  {Rank: King, Suit: Spades},
		"A♠":  {Rank: Ace, Suit: Spades},
	} {
		assert.Equal(t, expects, card.String())
	}

	assert.Panics(t, func() {
		_ = (&Card{Rank: 2, Suit: Suit("jokers")}).String()
	})
}

func TestCard_IsRed(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("2h").IsRed())
	a.True(CardFromString("14d").IsRed())
	a.False(CardFromString("2c").IsRed())
	a.False(CardFromString("14s").IsRed())
}

func TestCard_IsEvenRank(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("2h").IsEvenRank())
	a.True(CardFromString("12s").IsEvenRank())
	a.True(CardFromString("14c").IsEvenRank())
	a.False(CardFromString("3h").IsEvenRank())
	a.False(CardFromString("11d").IsEvenRank())
	a.False(CardFromString("13s").IsEvenRank())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)
	a.Equal(Card{Rank: 2, Suit: Clubs}, *CardFromString("2c"))
	a.Equal(Card{Rank: 14, Suit: Spades}, *CardFromString("14s"))
	a.Equal(Card{Rank: 10, Suit: Hearts}, *CardFromString("10H"))
	a.Nil(CardFromString(""))

	a.Panics(func() {
		CardFromString("15c")
	})

	a.Panics(func() {
		CardFromString("2x")
	})
}

func TestCardsToString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("2c,10d,14s")
	a.Equal(3, len(cards))
	a.Equal("2c,10d,14s", CardsToString(cards))

	a.Equal(0, len(CardsFromString("")))
	a.Equal("", CardsToString(nil))
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("5s").Equal(CardFromString("5s")))
	a.False(CardFromString("5s").Equal(CardFromString("5c")))
	a.False(CardFromString("5s").Equal(CardFromString("6s")))
}
