package mux

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/vilass86/cardgame/pkg/deck"
	"github.com/vilass86/cardgame/pkg/event"
	"github.com/vilass86/cardgame/pkg/hilo"
	"github.com/vilass86/cardgame/pkg/model"
)

// sessionResponse is the player-facing view of a session. The top card is
// the card the next bet will be scored against; the rest of the deck stays
// hidden
type sessionResponse struct {
	*model.Session
	TopCard   *deck.Card `json:"topCard"`
	CardsLeft int        `json:"cardsLeft"`
	Score     uint64     `json:"score"`
}

func newSessionResponse(session *model.Session, engine *hilo.Session) *sessionResponse {
	return &sessionResponse{
		Session:   session,
		TopCard:   engine.TopCard(),
		CardsLeft: engine.CardsLeft(),
		Score:     engine.Score(),
	}
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		games, err := model.GetGames(r.Context(), offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, games)
	}
}

type getGameUUIDResponse struct {
	*model.Game
	Leaderboard []hilo.Entry `json:"leaderboard"`
}

func (m *Mux) getGameUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := r.Context().Value(ctxGameKey).(*model.Game)

		board, err := game.Leaderboard(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, getGameUUIDResponse{
			Game:        game,
			Leaderboard: board,
		})
	})
}

func (m *Mux) postGameUUIDJoin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		game := r.Context().Value(ctxGameKey).(*model.Game)

		if err := game.Config().JoinAllowed(time.Now()); err != nil {
			writeGameError(w, err)
			return
		}

		session, err := player.JoinGame(r.Context(), game)
		if err != nil {
			writeGameError(w, err)
			return
		}

		engine, err := session.Engine()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.hub.Broadcast(event.New(event.KeyPlayerJoined, game.UUID, player.ID, map[string]interface{}{
			"pool": game.Pool,
		}))

		writeJSON(w, http.StatusCreated, newSessionResponse(session, engine))
	})
}

func (m *Mux) getGameUUIDSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		game := r.Context().Value(ctxGameKey).(*model.Game)

		session, err := model.GetSession(r.Context(), game.UUID, player.ID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		engine, err := session.Engine()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, newSessionResponse(session, engine))
	})
}

type randomnessPayload struct {
	// Seed tags the oracle request. It must parse as an unsigned 64-bit
	// integer; an empty seed is zero
	Seed string `json:"seed"`
}

func (m *Mux) postGameUUIDRandomness() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		game := r.Context().Value(ctxGameKey).(*model.Game)

		var pp randomnessPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		var seed uint64
		if pp.Seed != "" {
			var err error
			if seed, err = strconv.ParseUint(pp.Seed, 10, 64); err != nil {
				writeJSONError(w, http.StatusBadRequest, errors.New("seed must be an unsigned 64-bit integer"))
				return
			}
		}

		session, err := model.GetSession(r.Context(), game.UUID, player.ID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		engine, err := session.Engine()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if engine.Randomness != nil {
			writeGameError(w, hilo.ErrRandomnessAlreadyReceived)
			return
		}

		m.hub.Broadcast(event.New(event.KeyRandomnessRequested, game.UUID, player.ID, nil))

		value, err := m.oracle.Random(r.Context(), seed)
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

		// the value itself stays secret since the deck order derives from it
		m.hub.Broadcast(event.New(event.KeyRandomnessReceived, game.UUID, player.ID, map[string]interface{}{
			"deckHash": engine.Deck.HashCode(),
		}))

		writeJSON(w, http.StatusOK, newSessionResponse(session, engine))
	})
}

type roundPayload struct {
	RoundID int64 `json:"roundId"`
}

func (m *Mux) postGameUUIDRound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		game := r.Context().Value(ctxGameKey).(*model.Game)

		var pp roundPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		session, err := model.GetSession(r.Context(), game.UUID, player.ID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		if !session.HasRandomness() {
			writeJSONError(w, http.StatusBadRequest, errors.New("randomness has not been received yet"))
			return
		}

		engine, err := session.Engine()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if err := engine.StartRound(pp.RoundID, time.Now()); err != nil {
			writeGameError(w, err)
			return
		}

		if err := session.Save(r.Context(), engine); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.hub.Broadcast(event.New(event.KeyRoundStarted, game.UUID, player.ID, map[string]interface{}{
			"roundId":     engine.RoundID,
			"dailyRounds": engine.DailyRounds,
		}))

		writeJSON(w, http.StatusOK, newSessionResponse(session, engine))
	})
}

type betPayload struct {
	Direction hilo.Direction `json:"direction"`
	SideBet   *hilo.SideBet  `json:"sideBet"`
}

type betResponse struct {
	GameOver bool             `json:"gameOver"`
	Outcome  *hilo.Outcome    `json:"outcome,omitempty"`
	Session  *sessionResponse `json:"session"`
}

func (m *Mux) postGameUUIDBet() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		game := r.Context().Value(ctxGameKey).(*model.Game)

		var pp betPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !pp.Direction.Valid() {
			writeJSONError(w, http.StatusBadRequest, errors.New("direction must be high or low"))
			return
		}

		if pp.SideBet != nil {
			if err := pp.SideBet.Validate(); err != nil {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}
		}

		session, err := model.GetSession(r.Context(), game.UUID, player.ID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		engine, err := session.Engine()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if engine.Finished {
			writeGameError(w, hilo.ErrGameOver)
			return
		}

		outcome, betErr := engine.PlaceBet(pp.Direction, pp.SideBet, time.Now())
		switch betErr {
		case nil:
			if err := session.Save(r.Context(), engine); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			m.hub.Broadcast(event.New(event.KeyBetPlaced, game.UUID, player.ID, map[string]interface{}{
				"outcome":    outcome,
				"multiplier": engine.Multiplier,
			}))

			writeJSON(w, http.StatusOK, betResponse{
				Outcome: outcome,
				Session: newSessionResponse(session, engine),
			})
		case hilo.ErrGameOver:
			// game over still commits: the finished flag is a state
			// transition, not a rollback
			if err := session.Save(r.Context(), engine); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}

			m.hub.Broadcast(event.New(event.KeyGameOver, game.UUID, player.ID, map[string]interface{}{
				"outcome": outcome,
				"score":   engine.Score(),
			}))

			writeJSON(w, http.StatusOK, betResponse{
				GameOver: true,
				Outcome:  outcome,
				Session:  newSessionResponse(session, engine),
			})
		default:
			writeGameError(w, betErr)
		}
	})
}

type scoreResponse struct {
	Score uint64 `json:"score"`
}

func (m *Mux) postGameUUIDScore() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		game := r.Context().Value(ctxGameKey).(*model.Game)

		// the board stops accepting scores once it freezes
		if game.Finalized {
			writeGameError(w, hilo.ErrAlreadyFinalized)
			return
		}

		session, err := model.GetSession(r.Context(), game.UUID, player.ID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		engine, err := session.Engine()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		score, err := engine.SubmitScore(time.Now())
		if err != nil {
			writeGameError(w, err)
			return
		}

		if err := game.SubmitScore(r.Context(), player.ID, score); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, scoreResponse{Score: score})
	})
}

type leaderboardResponse struct {
	Finalized   bool         `json:"finalized"`
	FinalizedAt *time.Time   `json:"finalizedAt,omitempty"`
	Entries     []hilo.Entry `json:"entries"`
}

// getGameUUIDLeaderboard returns the frozen board once finalized, and a live
// preview of the current ranking before that
func (m *Mux) getGameUUIDLeaderboard() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := r.Context().Value(ctxGameKey).(*model.Game)

		var entries []hilo.Entry
		var err error
		if game.Finalized {
			entries, err = game.Leaderboard(r.Context())
		} else {
			entries, err = model.ScoreEntries(r.Context(), game.UUID)
			if err == nil {
				entries = hilo.Rank(entries, game.LeaderboardCapacity)
			}
		}

		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, leaderboardResponse{
			Finalized:   game.Finalized,
			FinalizedAt: game.FinalizedAt,
			Entries:     entries,
		})
	})
}

type claimPayload struct {
	Position int `json:"position"`
}

func (m *Mux) postGameUUIDClaim() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*model.Player)
		game := r.Context().Value(ctxGameKey).(*model.Game)

		var pp claimPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		claim, err := game.ClaimPrize(r.Context(), player, pp.Position, time.Now())
		if err != nil {
			writeGameError(w, err)
			return
		}

		m.hub.Broadcast(event.New(event.KeyPrizeClaimed, game.UUID, player.ID, map[string]interface{}{
			"position": claim.Position,
			"amount":   claim.Amount,
			"pool":     game.Pool,
		}))

		writeJSON(w, http.StatusCreated, claim)
	})
}
