package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	corsAllowMethods = "GET,POST,PUT,PATCH,DELETE,OPTIONS"
	corsAllowHeaders = "Content-Type,Authorization"
)

// CORS negotiates cross-origin access against an origin allow-list. An
// allowed origin is reflected back with the advertised methods and headers;
// preflight OPTIONS requests short-circuit with a no-body 204, and a
// preflight from an origin not on the list is rejected with 403. An empty
// list or a "*" entry allows every origin.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			preflight := c.Request().Method == http.MethodOptions

			// Same-origin or non-browser request.
			if origin == "" {
				if preflight {
					return c.NoContent(http.StatusNoContent)
				}
				return next(c)
			}

			if !allowAll && !allowed[origin] {
				if preflight {
					return echo.NewHTTPError(http.StatusForbidden, "Origin not allowed")
				}
				// Without allow headers the browser blocks the response.
				return next(c)
			}

			res := c.Response().Header()
			if allowAll {
				res.Set(echo.HeaderAccessControlAllowOrigin, "*")
			} else {
				res.Set(echo.HeaderAccessControlAllowOrigin, origin)
				res.Add(echo.HeaderVary, echo.HeaderOrigin)
			}
			res.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
			res.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)

			if preflight {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
