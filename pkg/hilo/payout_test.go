package hilo

import (
	"github.com/bmizerany/assert"
	"testing"
)

func TestGain(t *testing.T) {
	// the full payout schedule, high and low for every rank
	expected := map[int][2]float64{
		2:  {1.2, 4.0},
		3:  {1.25, 3.5},
		4:  {1.3, 3.0},
		5:  {1.35, 2.5},
		6:  {1.4, 2.0},
		7:  {1.5, 1.7},
		8:  {1.6, 1.6},
		9:  {1.8, 1.6},
		10: {2.0, 1.5},
		11: {2.5, 1.4},
		12: {3.0, 1.3},
		13: {4.0, 1.2},
		14: {1.2, 1.2},
	}

	for rank, gains := range expected {
		assert.Equal(t, gains[0], Gain(rank, High), "rank", rank)
		assert.Equal(t, gains[1], Gain(rank, Low), "rank", rank)
	}

	// ranks a real deck cannot produce are neutral
	assert.Equal(t, 1.0, Gain(1, High))
	assert.Equal(t, 1.0, Gain(15, Low))
	assert.Equal(t, 1.0, Gain(0, High))
}
