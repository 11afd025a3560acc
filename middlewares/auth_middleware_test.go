package middlewares_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buckneer/CheckMateV2/middlewares"
)

const secret = "test-secret"

func newApp() *echo.Echo {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		id, _ := c.Get("professor_id").(uint)
		return c.String(http.StatusOK, fmt.Sprintf("%d", id))
	}, middlewares.RequireAuth(secret))
	return e
}

func makeToken(t *testing.T, key string, sub uint, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return tok
}

func request(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthValidToken(t *testing.T) {
	e := newApp()
	rec := request(e, "Bearer "+makeToken(t, secret, 7, time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())
}

func TestRequireAuthMissingHeader(t *testing.T) {
	e := newApp()
	rec := request(e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token is missing!")
}

func TestRequireAuthBadScheme(t *testing.T) {
	e := newApp()
	rec := request(e, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthMalformedToken(t *testing.T) {
	e := newApp()
	rec := request(e, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token is invalid!")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	e := newApp()
	rec := request(e, "Bearer "+makeToken(t, secret, 7, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWrongSignature(t *testing.T) {
	e := newApp()
	rec := request(e, "Bearer "+makeToken(t, "other-secret", 7, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
