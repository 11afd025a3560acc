package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims carried by a session token: the professor id and the standard
// expiry, nothing else.
type Claims struct {
	Sub uint `json:"sub"`
	jwt.RegisteredClaims
}

func extractBearer(c echo.Context) (string, error) {
	h := c.Request().Header.Get("Authorization")
	if h == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"message": "Token is missing!"})
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"message": "Token is missing!"})
	}
	return parts[1], nil
}

// RequireAuth validates the HS256 token and attaches the professor id to
// the context under "professor_id".
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok, err := extractBearer(c)
			if err != nil {
				return err
			}
			token, err := jwt.ParseWithClaims(tok, &Claims{}, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"message": "Token is invalid!"})
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"message": "Token is invalid!"})
			}
			claims, ok := token.Claims.(*Claims)
			if !ok || claims.Sub == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"message": "Token is invalid!"})
			}
			// expiry re-check in case the parser was configured without it
			if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"message": "Token is invalid!"})
			}
			c.Set("professor_id", claims.Sub)
			return next(c)
		}
	}
}
