package hilo

import "sort"

// DefaultLeaderboardCapacity is how many entries survive finalization
const DefaultLeaderboardCapacity = 3

// Entry is a single leaderboard slot
type Entry struct {
	PlayerID int64  `json:"playerId"`
	Score    uint64 `json:"score"`
}

// Rank orders entries by score descending and truncates to capacity. The
// sort is stable, so entries with equal scores keep the order the caller
// supplied them in (callers pass them in submission order, which makes the
// earlier submission win the tie). Ranking never rejects: truncating a list
// already within capacity is a no-op. The finalize-once rule is enforced by
// State, not here
func Rank(entries []Entry, capacity int) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if capacity >= 0 && len(ranked) > capacity {
		ranked = ranked[:capacity]
	}

	return ranked
}
