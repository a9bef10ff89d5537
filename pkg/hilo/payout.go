package hilo

type gainPair struct {
	high, low float64
}

// gainByRank is a policy artifact. Ranks far from the median pay out
// asymmetrically, ranks near the median pay close to even, and the ace
// pays a flat 1.2 either way. Do not derive these values
var gainByRank = map[int]gainPair{
	2:  {high: 1.2, low: 4.0},
	3:  {high: 1.25, low: 3.5},
	4:  {high: 1.3, low: 3.0},
	5:  {high: 1.35, low: 2.5},
	6:  {high: 1.4, low: 2.0},
	7:  {high: 1.5, low: 1.7},
	8:  {high: 1.6, low: 1.6},
	9:  {high: 1.8, low: 1.6},
	10: {high: 2.0, low: 1.5},
	11: {high: 2.5, low: 1.4},
	12: {high: 3.0, low: 1.3},
	13: {high: 4.0, low: 1.2},
	14: {high: 1.2, low: 1.2},
}

// Gain returns the multiplier gain for a correct bet on the given current
// card rank. Ranks outside 2..14 return a neutral 1.0, although a real
// deck never produces one
func Gain(rank int, direction Direction) float64 {
	pair, ok := gainByRank[rank]
	if !ok {
		return 1.0
	}

	if direction == High {
		return pair.high
	}

	return pair.low
}
