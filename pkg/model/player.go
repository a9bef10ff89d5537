package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/synacor/argon2id"

	"github.com/vilass86/cardgame/pkg/db"
)

const playerColumns = `
players.id,
players.email,
players.display_name,
players.is_site_admin,
players.status,
players.password_hash,
players.created,
players.updated`

// PlayerStatus is the lifecycle status of a player account
type PlayerStatus string

// PlayerStatus constants
const (
	PlayerStatusActive  PlayerStatus = "active"
	PlayerStatusBlocked PlayerStatus = "blocked"
	PlayerStatusDeleted PlayerStatus = "deleted"
)

// Player is a record in the players table
type Player struct {
	ID           int64        `json:"id"`
	Email        string       `json:"-"`
	DisplayName  string       `json:"displayName"`
	IsSiteAdmin  bool         `json:"isSiteAdmin"`
	Status       PlayerStatus `json:"status"`
	passwordHash string
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getPlayerByRow(row db.Scanner) (*Player, error) {
	var player Player
	if err := row.Scan(
		&player.ID,
		&player.Email,
		&player.DisplayName,
		&player.IsSiteAdmin,
		&player.Status,
		&player.passwordHash,
		&player.Created,
		&player.Updated,
	); err != nil {
		return nil, err
	}

	return &player, nil
}

// CreatePlayer creates a new player
func CreatePlayer(ctx context.Context, email, displayName, password, remoteAddr string) (*Player, error) {
	hash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO players (email, display_name, password_hash, remote_addr)
VALUES ($1, $2, $3, $4)
RETURNING ` + playerColumns

	row := db.Instance().QueryRowContext(ctx, query, email, displayName, hash, remoteAddr)

	player, err := getPlayerByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return player, nil
}

// GetPlayerByID returns a player by their ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getPlayerByRow(row)
}

// GetPlayerByEmail returns a player by their email address
func GetPlayerByEmail(ctx context.Context, email string) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE lower(email) = lower($1)`

	row := db.Instance().QueryRowContext(ctx, query, email)
	return getPlayerByRow(row)
}

// GetPlayerByEmailAndPassword returns a player if the email and password match a record
func GetPlayerByEmailAndPassword(ctx context.Context, email, password string) (*Player, error) {
	player, err := GetPlayerByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			// compare to prevent timing attacks
			_ = argon2id.Compare("", "")
			return nil, ErrInvalidEmailOrPassword
		}

		return nil, err
	}

	if err := player.ValidatePassword(password); err != nil {
		return nil, err
	}

	if player.Status != PlayerStatusActive {
		return nil, ErrAccountNotActive
	}

	return player, nil
}

// ValidatePassword checks the password against the stored hash
func (p *Player) ValidatePassword(password string) error {
	if err := argon2id.Compare(p.passwordHash, password); err != nil {
		if err == argon2id.ErrMismatchedHashAndPassword {
			return ErrInvalidEmailOrPassword
		}

		return err
	}

	return nil
}

// LastPlayerCreatedAt returns the time the most recent player was created from the remote address
func LastPlayerCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error) {
	const query = `
SELECT MAX(created)
FROM players
WHERE remote_addr = $1`

	var created sql.NullTime
	if err := db.Instance().QueryRowContext(ctx, query, remoteAddr).Scan(&created); err != nil {
		return time.Time{}, err
	}

	if !created.Valid {
		return time.Time{}, nil
	}

	return created.Time, nil
}

// Save saves the mutable player fields
func (p *Player) Save(ctx context.Context) error {
	const query = `
UPDATE players
SET email = $1, display_name = $2, status = $3, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $4
RETURNING updated`

	var updated time.Time
	if err := db.Instance().QueryRowContext(ctx, query, p.Email, p.DisplayName, p.Status, p.ID).Scan(&updated); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return ErrDuplicateKey
		}

		return err
	}

	p.Updated = updated
	return nil
}

// SetPassword updates the player's password
func (p *Player) SetPassword(ctx context.Context, password string) error {
	hash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return err
	}

	const query = `
UPDATE players
SET password_hash = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
RETURNING updated`

	var updated time.Time
	if err := db.Instance().QueryRowContext(ctx, query, hash, p.ID).Scan(&updated); err != nil {
		return err
	}

	p.passwordHash = hash
	p.Updated = updated
	return nil
}

// SetIsSiteAdmin sets the site admin flag for the player
func (p *Player) SetIsSiteAdmin(ctx context.Context, isSiteAdmin bool) error {
	const query = `
UPDATE players
SET is_site_admin = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2
RETURNING updated`

	var updated time.Time
	if err := db.Instance().QueryRowContext(ctx, query, isSiteAdmin, p.ID).Scan(&updated); err != nil {
		return err
	}

	p.IsSiteAdmin = isSiteAdmin
	p.Updated = updated
	return nil
}

// GetPlayers returns a page of players ordered by ID
func GetPlayers(ctx context.Context, start int64, rows int) ([]*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
ORDER BY id
OFFSET $1 LIMIT $2`

	return getPlayers(ctx, query, start, rows)
}

// GetPlayersWithSearch returns a page of players matching the search term
func GetPlayersWithSearch(ctx context.Context, search string, start int64, rows int) ([]*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE display_name ILIKE $3 OR email ILIKE $3 OR CAST(id AS TEXT) = $4
ORDER BY id
OFFSET $1 LIMIT $2`

	like := "%" + likeEscape(search) + "%"
	return getPlayers(ctx, query, start, rows, like, search)
}

func getPlayers(ctx context.Context, query string, args ...interface{}) ([]*Player, error) {
	rows, err := db.Instance().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	players := make([]*Player, 0)
	for rows.Next() {
		player, err := getPlayerByRow(rows)
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	return players, nil
}

func likeEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// Delete anonymizes the player record and blocks future logins
func (p *Player) Delete(ctx context.Context) error {
	const query = `
UPDATE players
SET email = $1, display_name = $2, password_hash = '', status = $3, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $4
RETURNING updated`

	email := fmt.Sprintf("%d@deleted.pixelcards.io", p.ID)
	displayName := fmt.Sprintf("deleted-%d", p.ID)

	var updated time.Time
	if err := db.Instance().QueryRowContext(ctx, query, email, displayName, PlayerStatusDeleted, p.ID).Scan(&updated); err != nil {
		return err
	}

	p.Email = email
	p.DisplayName = displayName
	p.passwordHash = ""
	p.Status = PlayerStatusDeleted
	p.Updated = updated
	return nil
}
