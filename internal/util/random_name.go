package util

import (
	"math/rand"
	"time"
)

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

var adjectives = []string{
	"Fast", "Slow", "Quick", "Speedy", "Lucky", "Unlucky", "Gracious", "Healthy", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Golden", "Smiling", "Tall", "Grand", "Ultimate", "Prime",
	"Alpha", "Daring", "Bluffing", "Counting", "Folding", "Charging", "Shooting", "Bouncing", "Wild",
	"Sneaky", "Bold",
}

var nouns = []string{
	"Ace", "Deuce", "Joker", "Dealer", "Shark", "Whale", "Gambler", "Hustler", "Shuffler", "Banker",
	"Croupier", "Maverick", "Cardsharp", "Highroller", "Punter", "Stacker", "Cutter", "Bluffer",
	"Pitboss", "Kibitzer", "Railbird", "Grinder", "Tourist", "Regular", "Rounder",
}

// GetRandomName returns a random name by combining an adjective with a card table noun
func GetRandomName() string {
	adjective := adjectives[random.Intn(len(adjectives))]
	noun := nouns[random.Intn(len(nouns))]

	return adjective + " " + noun
}
