package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"

	"github.com/vilass86/cardgame/internal/config"
	"github.com/vilass86/cardgame/internal/jwt"
	"github.com/vilass86/cardgame/internal/oracle"
	"github.com/vilass86/cardgame/pkg/event"
	"github.com/vilass86/cardgame/pkg/model"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxGameKey
)

// uuidPattern matches the canonical string form of a game UUID in a route
const uuidPattern = `{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}`

// Mux routes API requests
type Mux struct {
	*gmux.Router
	opts      options
	version   string
	recaptcha recaptcha
	hub       *event.Hub
	oracle    oracle.Oracle

	// exposed so tests can mount probe handlers behind the middleware
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

type options struct {
	// playerCreateDelay is the minimum wait between two account creations
	// from a single remote address
	playerCreateDelay time.Duration
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	hub := event.NewHub()
	hub.Start()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		hub:     hub,
		oracle:  oracle.Crypto{},
		opts: options{
			playerCreateDelay: time.Duration(config.Instance().PlayerCreateDelay) * time.Second,
		},
		recaptcha: newRecaptcha(),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.PathPrefix("/admin").Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// public endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
		r.Methods(http.MethodPost).Path("/player/auth").Handler(this.postPlayerAuth())
		r.Methods(http.MethodGet).Path("/player/auth/{jwt:.*}").Handler(this.getPlayerAuthJWT())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/player/{id:[0-9]+}").Handler(this.postPlayerID())
		r.Methods(http.MethodGet).Path("/player/{id:[0-9]+}/wallet").Handler(this.getPlayerIDWallet())

		r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())

		gr := r.PathPrefix("/game/" + uuidPattern).Subrouter()
		gr.Use(this.gameMiddleware)

		gr.Methods(http.MethodGet).Path("").Handler(this.getGameUUID())
		gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameUUIDWS())
		gr.Methods(http.MethodPost).Path("/join").Handler(this.postGameUUIDJoin())
		gr.Methods(http.MethodGet).Path("/session").Handler(this.getGameUUIDSession())
		gr.Methods(http.MethodPost).Path("/randomness").Handler(this.postGameUUIDRandomness())
		gr.Methods(http.MethodPost).Path("/round").Handler(this.postGameUUIDRound())
		gr.Methods(http.MethodPost).Path("/bet").Handler(this.postGameUUIDBet())
		gr.Methods(http.MethodPost).Path("/score").Handler(this.postGameUUIDScore())
		gr.Methods(http.MethodGet).Path("/leaderboard").Handler(this.getGameUUIDLeaderboard())
		gr.Methods(http.MethodPost).Path("/claim").Handler(this.postGameUUIDClaim())
	}

	// requires site admin access
	{
		r := this.adminRouter
		r.Methods(http.MethodPost).Path("/game").Handler(this.postAdminGame())
		r.Methods(http.MethodGet).Path("/player").Handler(this.getAdminPlayer())
		r.Methods(http.MethodPost).Path("/player/{id:[0-9]+}").Handler(this.postAdminPlayerID())
		r.Methods(http.MethodPost).Path("/player/{id:[0-9]+}/wallet").Handler(this.postAdminPlayerIDWallet())

		gr := r.PathPrefix("/game/" + uuidPattern).Subrouter()
		gr.Use(this.gameMiddleware)

		gr.Methods(http.MethodPost).Path("/finalize").Handler(this.postAdminGameUUIDFinalize())
		gr.Methods(http.MethodPost).Path("/reset-daily").Handler(this.postAdminGameUUIDResetDaily())
		gr.Methods(http.MethodPost).Path("/player/{id:[0-9]+}/randomness").Handler(this.postAdminGameUUIDPlayerIDRandomness())
	}

	return this
}

// bearerToken pulls the caller's JWT from the access_token form value or the
// Authorization header. A missing token comes back empty and fails validation
func bearerToken(r *http.Request) string {
	if token := r.FormValue("access_token"); token != "" {
		return token
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}

	return ""
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := jwt.ValidUserID(bearerToken(r))
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		player, err := model.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		w.Header().Set("PixelCards-UserID", strconv.FormatInt(player.ID, 10))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxPlayerKey, player)))
	})
}

// adminMiddleware runs behind authMiddleware and gates site admin routes
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if player := r.Context().Value(ctxPlayerKey).(*model.Player); !player.IsSiteAdmin {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		game, err := model.GetGameByUUID(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxGameKey, game)))
	})
}
