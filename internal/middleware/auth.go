package middleware

import (
	"net/http"
	"strings"

	"github.com/Akshatagarwal19/InstagramCloneBackend/internal/token"
	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key the authorizer stores the verified
// subject under.
const UserIDKey = "userID"

// Auth is the request authorizer: it extracts the bearer credential from the
// Authorization header, verifies it against the token service and attaches
// the resolved user id to the request context. Public routes (login,
// register, health) are mounted outside the group this wraps.
func Auth(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: No Token provided")
			}

			userID, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid token")
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID reads the authenticated user id set by Auth. Zero means the request
// never passed through the authorizer.
func UserID(c echo.Context) uint {
	if id, ok := c.Get(UserIDKey).(uint); ok {
		return id
	}
	return 0
}
