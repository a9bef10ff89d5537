package model

import (
	"context"

	"github.com/vilass86/cardgame/pkg/db"
	"github.com/vilass86/cardgame/pkg/hilo"
)

// SubmitScore records the player's score for the game, keeping their best.
// Improving a score keeps the original row, so ranking ties break toward the
// longer-standing submission
func (g *Game) SubmitScore(ctx context.Context, playerID int64, score uint64) error {
	const query = `
INSERT INTO scores (game_uuid, player_id, score)
VALUES ($1, $2, $3)
ON CONFLICT (game_uuid, player_id)
DO UPDATE SET score = EXCLUDED.score, updated = (NOW() AT TIME ZONE 'utc')
WHERE scores.score < EXCLUDED.score`

	_, err := db.Instance().ExecContext(ctx, query, g.UUID, playerID, int64(score))
	return err
}

// ScoreEntries returns the submitted scores in submission order. Ranking
// breaks ties by that order
func ScoreEntries(ctx context.Context, gameUUID string) ([]hilo.Entry, error) {
	const query = `
SELECT player_id, score
FROM scores
WHERE game_uuid = $1
ORDER BY id`

	rows, err := db.Instance().QueryContext(ctx, query, gameUUID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	entries := make([]hilo.Entry, 0)
	for rows.Next() {
		var entry hilo.Entry
		var score int64
		if err := rows.Scan(&entry.PlayerID, &score); err != nil {
			return nil, err
		}

		entry.Score = uint64(score)
		entries = append(entries, entry)
	}

	return entries, nil
}
