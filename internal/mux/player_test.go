package mux

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vilass86/cardgame/internal/jwt"
	"github.com/vilass86/cardgame/internal/util"
	"github.com/vilass86/cardgame/pkg/model"
)

func Test_postPlayer(t *testing.T) {
	m := NewMux("")
	m.opts.playerCreateDelay = time.Second * -1

	ts := httptest.NewServer(m)
	defer ts.Close()

	badRequests := []struct {
		name    string
		payload interface{}
		message string
	}{
		{"empty body", "{}", "missing or invalid email address"},
		{"bad display name", playerPayload{DisplayName: "&"}, "display name must only contain letters, numbers, and spaces, and be 40 characters or less"},
		{"short password", playerPayload{Email: util.RandomEmail()}, "password must be 6 or more characters"},
	}

	for _, tc := range badRequests {
		t.Run(tc.name, func(t *testing.T) {
			var obj errorResponse
			assertPost(t, ts, "/player", tc.payload, &obj, 400)
			assert.Equal(t, tc.message, obj.Message)
		})
	}

	email := util.RandomEmail()
	var pObj *playerWithEmail
	assertPost(t, ts, "/player", playerPayload{
		Email:    email,
		Password: "123456",
	}, &pObj, 201)
	assert.Greater(t, pObj.ID, int64(0))
	assert.Equal(t, email, pObj.Email)
	assert.NotEmpty(t, pObj.DisplayName)

	var obj errorResponse
	assertPost(t, ts, "/player", &playerPayload{
		Email:    email,
		Password: "123456",
	}, &obj, 400)
	assert.Equal(t, "email address is already taken", obj.Message)

	// an explicit display name sticks
	email = util.RandomEmail()
	assertPost(t, ts, "/player", playerPayload{
		Email:       email,
		Password:    "123456",
		DisplayName: "Tommy",
	}, &pObj, 201)
	assert.Equal(t, email, pObj.Email)
	assert.Equal(t, "Tommy", pObj.DisplayName)

	m.opts.playerCreateDelay = time.Hour
	obj = errorResponse{}
	assertPost(t, ts, "/player", playerPayload{
		Email:    util.RandomEmail(),
		Password: "123456",
	}, &obj, 400)
	assert.Equal(t, "please wait before creating another player", obj.Message)
}

func Test_postPlayerAuth(t *testing.T) {
	setupJWT()

	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	email := util.RandomEmail()
	pw := "my-password"

	created, err := model.CreatePlayer(cbg, email, email, pw, "")
	if err != nil {
		t.Fatal(err)
	}

	var resp postPlayerAuthResponse
	assertPost(t, ts, "/player/auth", playerPayload{
		Email:    email,
		Password: pw,
	}, &resp, 200)
	id, err := jwt.ValidUserID(resp.JWT)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, id)
	assert.Equal(t, email, resp.Player.Email)

	var playerObj *playerWithEmail
	assertGet(t, ts, fmt.Sprintf("/player/auth/%s", resp.JWT), &playerObj, 200)
	assert.Equal(t, email, playerObj.Email)
}

func Test_getPlayerAuthJWT_BadRequests(t *testing.T) {
	setupJWT()

	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/player/auth/bad", &errObj, 401)
	assert.Contains(t, errObj.Message, "token contains an invalid number of segments")

	// this should only happen if user is deleted from database
	signedToken, _ := jwt.Sign(-1)
	errObj = errorResponse{}
	assertGet(t, ts, fmt.Sprintf("/player/auth/%s", signedToken), &errObj, 404)
	assert.Equal(t, "player does not exist", errObj.Message)
}

func Test_postPlayerAuth_BadCreds(t *testing.T) {
	setupJWT()

	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	email := util.RandomEmail()
	if _, err := model.CreatePlayer(cbg, email, email, "my-password", ""); err != nil {
		t.Fatal(err)
	}

	var errObj errorResponse
	assertPost(t, ts, "/player/auth", playerPayload{
		Email:    email,
		Password: "bad-password",
	}, &errObj, 401)
	assert.Equal(t, "invalid email address and/or password", errObj.Message)
}

func Test_postPlayerAuth_notActive(t *testing.T) {
	setupJWT()

	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	email := util.RandomEmail()
	created, err := model.CreatePlayer(cbg, email, email, "my-password", "")
	if err != nil {
		t.Fatal(err)
	}

	created.Status = model.PlayerStatusBlocked
	assert.NoError(t, created.Save(cbg))

	var errObj errorResponse
	assertPost(t, ts, "/player/auth", playerPayload{
		Email:    email,
		Password: "my-password",
	}, &errObj, 401)
	assert.Equal(t, "account is not active", errObj.Message)
}

func Test_postPlayerID(t *testing.T) {
	setupJWT()

	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	p1, j1 := player()
	p2, _ := player()

	// players cannot update someone else
	var errObj errorResponse
	assertPost(t, ts, fmt.Sprintf("/player/%d", p2.ID), postPlayerIDPayload{DisplayName: "Intruder"}, &errObj, 403, j1)
	assert.Equal(t, "Forbidden", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, fmt.Sprintf("/player/%d", p1.ID), postPlayerIDPayload{DisplayName: "&"}, &errObj, 400, j1)
	assert.Equal(t, "display name must only contain letters, numbers, and spaces", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, fmt.Sprintf("/player/%d", p1.ID), postPlayerIDPayload{Email: "not-an-email"}, &errObj, 400, j1)
	assert.Equal(t, "invalid email address", errObj.Message)

	errObj = errorResponse{}
	assertPost(t, ts, fmt.Sprintf("/player/%d", p1.ID), postPlayerIDPayload{Email: p2.Email}, &errObj, 400, j1)
	assert.Equal(t, "email address is already taken", errObj.Message)

	var ok map[string]string
	newEmail := util.RandomEmail()
	assertPost(t, ts, fmt.Sprintf("/player/%d", p1.ID), postPlayerIDPayload{DisplayName: "New Name", Email: newEmail}, &ok, 200, j1)
	assert.Equal(t, "OK", ok["status"])

	updated, err := model.GetPlayerByID(cbg, p1.ID)
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.DisplayName)
	assert.Equal(t, newEmail, updated.Email)
}

func Test_getPlayerIDWallet(t *testing.T) {
	setupJWT()

	ts := httptest.NewServer(NewMux(""))
	defer ts.Close()

	p1, j1 := player()
	p2, j2 := player()

	_, err := model.AdjustWallet(cbg, p1.ID, 250, nil, "test funds")
	assert.NoError(t, err)

	var wallet *model.Wallet
	assertGet(t, ts, fmt.Sprintf("/player/%d/wallet", p1.ID), &wallet, http.StatusOK, j1)
	assert.Equal(t, int64(250), wallet.Balance)

	// players cannot see another player's wallet
	assertGet(t, ts, fmt.Sprintf("/player/%d/wallet", p1.ID), nil, http.StatusForbidden, j2)

	// site admins can
	assert.NoError(t, p2.SetIsSiteAdmin(cbg, true))
	wallet = nil
	assertGet(t, ts, fmt.Sprintf("/player/%d/wallet", p1.ID), &wallet, http.StatusOK, j2)
	assert.Equal(t, int64(250), wallet.Balance)
}
