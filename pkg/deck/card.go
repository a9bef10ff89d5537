package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

var suitLetters = map[Suit]string{
	Clubs:    "c",
	Diamonds: "d",
	Hearts:   "h",
	Spades:   "s",
}

var suitsByLetter = map[string]Suit{
	"c": Clubs,
	"d": Diamonds,
	"h": Hearts,
	"s": Spades,
}

var suitGlyphs = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♢",
	Hearts:   "♡",
	Spades:   "♠",
}

var rankSymbols = map[int]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

// Card is an individual playing card
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c *Card) String() string {
	rank, found := rankSymbols[c.Rank]
	if !found {
		rank = strconv.Itoa(c.Rank)
	}

	glyph, found := suitGlyphs[c.Suit]
	if !found {
		panic("unknown suit")
	}

	return rank + glyph
}

// Equal returns true if the cards match in both suit and rank
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// IsRed returns true if the card is hearts or diamonds
func (c *Card) IsRed() bool {
	return c.Suit == Hearts || c.Suit == Diamonds
}

// IsEvenRank returns true if the rank is even. Face cards count by
// their numeric rank (J=11, Q=12, K=13, A=14)
func (c *Card) IsEvenRank() bool {
	return c.Rank%2 == 0
}

var cardRx = regexp.MustCompile(`(?i)^([0-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from a string like "14s".
// The rank must be between 2 and 14 and the suit one of [cdhs]
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	return &Card{
		Rank: rank,
		Suit: suitsByLetter[strings.ToLower(match[2])],
	}
}

// CardsFromString returns the slice of cards encoded in a comma-separated
// string like "2c,3h,4s"
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	return strconv.Itoa(card.Rank) + suitLetters[card.Suit]
}

// CardsToString is the inverse of CardsFromString
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
