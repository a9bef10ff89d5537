package hilo

import "time"

// Config are the immutable parameters of a game window
type Config struct {
	AdminID             int64
	EntryFee            int64
	WindowStart         time.Time
	WindowEnd           time.Time
	LeaderboardCapacity int
}

// NewConfig validates and returns the parameters for a new game.
// The window must have positive length and the entry fee must be positive
func NewConfig(adminID, entryFee int64, windowStart, windowEnd time.Time) (*Config, error) {
	if !windowStart.Before(windowEnd) {
		return nil, ErrInvalidStartTime
	}

	if entryFee <= 0 {
		return nil, ErrInvalidEntryFee
	}

	return &Config{
		AdminID:             adminID,
		EntryFee:            entryFee,
		WindowStart:         windowStart,
		WindowEnd:           windowEnd,
		LeaderboardCapacity: DefaultLeaderboardCapacity,
	}, nil
}

// State is the shared, admin-gated side of a game: the prize pool and the
// leaderboard with its one-way finalized latch
type State struct {
	Config      *Config
	Leaderboard []Entry
	Finalized   bool
	FinalizedAt time.Time
	Pool        int64
}

// NewState returns the state for a freshly initialized game
func NewState(config *Config) *State {
	return &State{
		Config:      config,
		Leaderboard: []Entry{},
	}
}

// JoinAllowed reports whether a player may buy in at the given time.
// Joining is only open inside [WindowStart, WindowEnd)
func (c *Config) JoinAllowed(now time.Time) error {
	if now.Before(c.WindowStart) || !now.Before(c.WindowEnd) {
		return ErrOutsideGameWindow
	}

	return nil
}

// FinalizeLeaderboard ranks the submitted entries, truncates them to the
// configured capacity, and latches the board. Only the game's admin may
// finalize, and only once; the latch never resets
func (s *State) FinalizeLeaderboard(callerID int64, entries []Entry, now time.Time) error {
	if callerID != s.Config.AdminID {
		return ErrUnauthorized
	}

	if s.Finalized {
		return ErrAlreadyFinalized
	}

	s.Leaderboard = Rank(entries, s.Config.LeaderboardCapacity)
	s.Finalized = true
	s.FinalizedAt = now

	return nil
}
