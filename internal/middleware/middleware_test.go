package middleware

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/pcview/internal/config"
)

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/trees", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/trees", nil)
	req = req.WithContext(WithUserClaims(req.Context(), config.NewUserClaims(1, "hydra")))
	h(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func testCookies(t *testing.T) (*config.Cookies, *config.JWT) {
	t.Helper()
	t.Setenv("COOKIES_DOMAIN", "localhost")
	t.Setenv("COOKIES_SECURE", "0")
	t.Setenv("COOKIES_SAMESITE", "strict")
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	j := config.NewJWTFromKeys(key, &key.PublicKey, time.Hour)
	cookies, err := config.NewCookies(j)
	require.NoError(t, err)
	return cookies, j
}

func TestAuth(t *testing.T) {
	cookies, j := testCookies(t)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	var got *config.UserClaims
	h := Auth(logger, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserClaims(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got)
	assert.Empty(t, rec.Result().Cookies())

	token, err := j.Sign(config.NewUserClaims(7, "hydra"))
	require.NoError(t, err)
	login := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(login, token))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserId)

	got = nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth", Value: "forged.claims"})
	req.AddCookie(&http.Cookie{Name: "sign", Value: "nope"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Nil(t, got)
	assert.NotEmpty(t, rec.Result().Cookies(), "invalid cookies are cleared")
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/trees?name=x", nil))
	assert.Contains(t, buf.String(), `"statusCode":201`)
	assert.Contains(t, buf.String(), `"uri":"/trees?name=x"`)
}
