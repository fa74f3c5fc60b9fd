package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// tokenContextKey is where BearerToken stores the raw token string.
const tokenContextKey = "token"

// BearerToken extracts the raw bearer token from the Authorization header
// and injects it into the request context. Verification happens in the
// account service, which owns the authentication and authorization rules;
// this middleware only rejects requests with a missing or malformed header.
func BearerToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			c.Set(tokenContextKey, parts[1])
			return next(c)
		}
	}
}

// Token returns the bearer token stored by BearerToken, or "" when absent.
func Token(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}
