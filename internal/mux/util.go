package mux

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vilass86/cardgame/pkg/hilo"
	"github.com/vilass86/cardgame/pkg/model"
)

const maxRows = 100
const defaultRows = 100

// maxRequestBody caps JSON payloads. Every legitimate request body in the
// API fits well below this
const maxRequestBody = 1 << 20

func parsePaginationOptions(r *http.Request) (int64, int, error) {
	start := int64(0)
	if s := r.FormValue("start"); s != "" {
		val, err := strconv.ParseInt(s, 10, 64)
		switch {
		case err != nil:
			return 0, 0, err
		case val < 0:
			return 0, 0, errors.New("start cannot be less than zero")
		}

		start = val
	}

	rows := defaultRows
	if s := r.FormValue("rows"); s != "" {
		val, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return 0, 0, err
		case val <= 0:
			return 0, 0, errors.New("rows must be greater than zero")
		case val > maxRows:
			return 0, 0, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		rows = val
	}

	return start, rows, nil
}

func remoteAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// if err is sql.ErrNoRows, treat as 404, otherwise treat as a 500
func writeMaybeNotFoundError(w http.ResponseWriter, err error) {
	if err == sql.ErrNoRows {
		writeJSONError(w, http.StatusNotFound, nil)
		return
	}

	writeJSONError(w, http.StatusInternalServerError, err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}

// rule violations the caller can correct
var badRequestErrors = []error{
	hilo.ErrInvalidStartTime,
	hilo.ErrInvalidEntryFee,
	hilo.ErrDailyLimitReached,
	hilo.ErrRandomnessAlreadyReceived,
	hilo.ErrBetTimeExpired,
	hilo.ErrGameOver,
	hilo.ErrOutsideGameWindow,
	hilo.ErrRoundInProgress,
	hilo.ErrAlreadyFinalized,
	hilo.ErrPrizeWindowExpired,
	hilo.ErrNotOnLeaderboard,
	model.ErrPlayerNotInGame,
}

// writeGameError maps the game rule errors onto HTTP status codes. Anything
// unrecognized is a 500
func writeGameError(w http.ResponseWriter, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
	}

	var userError model.UserError
	if errors.As(err, &userError) {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	switch {
	case errors.Is(err, hilo.ErrUnauthorized):
		writeJSONError(w, http.StatusForbidden, err)
	case errors.Is(err, sql.ErrNoRows):
		writeJSONError(w, http.StatusNotFound, nil)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}
