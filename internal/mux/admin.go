package mux

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	gmux "github.com/gorilla/mux"

	"github.com/vilass86/cardgame/pkg/event"
	"github.com/vilass86/cardgame/pkg/hilo"
	"github.com/vilass86/cardgame/pkg/model"
)

type postAdminGamePayload struct {
	EntryFee            int64     `json:"entryFee"`
	WindowStart         time.Time `json:"windowStart"`
	WindowEnd           time.Time `json:"windowEnd"`
	LeaderboardCapacity int       `json:"leaderboardCapacity"`
}

func (m *Mux) postAdminGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)

		var pp postAdminGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		config, err := hilo.NewConfig(player.ID, pp.EntryFee, pp.WindowStart, pp.WindowEnd)
		if err != nil {
			writeGameError(w, err)
			return
		}

		if pp.LeaderboardCapacity > 0 {
			config.LeaderboardCapacity = pp.LeaderboardCapacity
		}

		game, err := model.CreateGame(r.Context(), config)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.hub.Broadcast(event.New(event.KeyGameInitialized, game.UUID, player.ID, nil))

		writeJSON(w, http.StatusCreated, game)
	}
}

func (m *Mux) postAdminGameUUIDFinalize() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		game := r.Context().Value(ctxGameKey).(*model.Game)

		board, err := game.Finalize(r.Context(), player.ID, time.Now())
		if err != nil {
			writeGameError(w, err)
			return
		}

		m.hub.Broadcast(event.New(event.KeyLeaderboardFinalized, game.UUID, player.ID, map[string]interface{}{
			"leaderboard": board,
		}))

		writeJSON(w, http.StatusOK, leaderboardResponse{
			Finalized:   game.Finalized,
			FinalizedAt: game.FinalizedAt,
			Entries:     board,
		})
	})
}

type resetDailyResponse struct {
	SessionsReset int64 `json:"sessionsReset"`
}

func (m *Mux) postAdminGameUUIDResetDaily() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := r.Context().Value(ctxGameKey).(*model.Game)

		count, err := game.ResetDailyRounds(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, resetDailyResponse{SessionsReset: count})
	})
}

type adminRandomnessPayload struct {
	// Value is the randomness as a decimal string so 64-bit values survive
	// JSON number precision
	Value string `json:"value"`
}

// postAdminGameUUIDPlayerIDRandomness delivers an explicit randomness value
// to a player's session, bypassing the oracle
func (m *Mux) postAdminGameUUIDPlayerIDRandomness() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := r.Context().Value(ctxGameKey).(*model.Game)
		playerID, _ := strconv.ParseInt(gmux.Vars(r)["id"], 10, 64)

		var pp adminRandomnessPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		value, err := strconv.ParseUint(pp.Value, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, errors.New("value must be an unsigned 64-bit integer"))
			return
		}

		session, err := model.GetSession(r.Context(), game.UUID, playerID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		engine, err := session.Engine()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if err := engine.ReceiveRandomness(value); err != nil {
			writeGameError(w, err)
			return
		}

		if err := session.Save(r.Context(), engine); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.hub.Broadcast(event.New(event.KeyRandomnessReceived, game.UUID, playerID, map[string]interface{}{
			"deckHash": engine.Deck.HashCode(),
		}))

		writeJSON(w, http.StatusOK, statusOK)
	})
}

func (m *Mux) getAdminPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		var players []*model.Player
		if search := r.FormValue("search"); search != "" {
			players, err = model.GetPlayersWithSearch(r.Context(), search, offset, limit)
		} else {
			players, err = model.GetPlayers(r.Context(), offset, limit)
		}

		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		adminPlayers := make([]*playerWithEmail, len(players))
		for i, p := range players {
			adminPlayers[i] = &playerWithEmail{
				Player: p,
				Email:  p.Email,
			}
		}

		writeJSON(w, http.StatusOK, adminPlayers)
	}
}

type adminPostPlayerIDRequest struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

func (m *Mux) postAdminPlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _ := strconv.ParseInt(gmux.Vars(r)["id"], 10, 64)
		player, err := model.GetPlayerByID(r.Context(), playerID)
		if err != nil {
			if err == sql.ErrNoRows {
				writeJSONError(w, http.StatusNotFound, nil)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		var payload adminPostPlayerIDRequest
		if !decodeRequest(w, r, &payload) {
			return
		}

		switch payload.Key {
		case "password":
			value, ok := payload.Value.(string)
			if !ok {
				writeJSONError(w, http.StatusBadRequest, errors.New("password must be a string"))
				return
			}

			if err := player.SetPassword(r.Context(), value); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		case "isSiteAdmin":
			value, ok := payload.Value.(bool)
			if !ok {
				writeJSONError(w, http.StatusBadRequest, errors.New("isSiteAdmin must be a boolean"))
				return
			}

			if err := player.SetIsSiteAdmin(r.Context(), value); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		case "status":
			value, ok := payload.Value.(string)
			status := model.PlayerStatus(value)
			if !ok || (status != model.PlayerStatusActive && status != model.PlayerStatusBlocked) {
				writeJSONError(w, http.StatusBadRequest, errors.New("status must be active or blocked"))
				return
			}

			player.Status = status
			if err := player.Save(r.Context()); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		default:
			writeJSONError(w, http.StatusBadRequest, errors.New("bad payload"))
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

type adminWalletPayload struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

type adminWalletResponse struct {
	Balance int64 `json:"balance"`
}

func (m *Mux) postAdminPlayerIDWallet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, _ := strconv.ParseInt(gmux.Vars(r)["id"], 10, 64)
		player, err := model.GetPlayerByID(r.Context(), playerID)
		if err != nil {
			if err == sql.ErrNoRows {
				writeJSONError(w, http.StatusNotFound, nil)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		var pp adminWalletPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.Amount == 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("amount must not be zero"))
			return
		}

		if pp.Reason == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("reason is required"))
			return
		}

		balance, err := model.AdjustWallet(r.Context(), player.ID, pp.Amount, nil, pp.Reason)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, adminWalletResponse{Balance: balance})
	}
}
