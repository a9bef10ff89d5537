package mux

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_authRouter(t *testing.T) {
	setupJWT()
	m := NewMux("")

	m.authRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, "OK")
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	assertGet(t, ts, "/test", &errObj, 401, "not-a-token")
	assert.Equal(t, "Unauthorized", errObj.Message)

	p, token := player()

	// test using auth header
	var str string
	resp := assertGet(t, ts, "/test", &str, 200, token)
	assert.Equal(t, "OK", str)
	assert.Equal(t, strconv.FormatInt(p.ID, 10), resp.Header.Get("PixelCards-UserID"))

	// test using query parameter
	resp = assertGet(t, ts, "/test?access_token="+url.QueryEscape(token), &str, 200)
	assert.Equal(t, "OK", str)
	assert.Equal(t, strconv.FormatInt(p.ID, 10), resp.Header.Get("PixelCards-UserID"))
}

func Test_adminRouter(t *testing.T) {
	setupJWT()
	m := NewMux("")

	m.adminRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, "OK")
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	// the admin router sits behind the auth router
	var errObj errorResponse
	assertGet(t, ts, "/admin/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	p, token := player()

	assertGet(t, ts, "/admin/test", &errObj, 403, token)
	assert.Equal(t, "Forbidden", errObj.Message)

	_ = p.SetIsSiteAdmin(cbg, true)

	var str string
	assertGet(t, ts, "/admin/test", &str, 200, token)
	assert.Equal(t, "OK", str)
}
