package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// UsernameKey is the context key for storing the authenticated caller
	UsernameKey ContextKey = "username"
)

// ExtractUsername is a middleware that extracts the X-User-ID header and
// stores it in the request context. Session verification happens at the
// edge; by the time a request reaches this service the header carries an
// opaque, already-verified caller identity.
//
// Usage:
//
//	e := echo.New()
//	e.Use(middleware.ExtractUsername())
func ExtractUsername() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Request().Header.Get("X-User-ID")

			if username != "" {
				c.Set(string(UsernameKey), username)
			}

			return next(c)
		}
	}
}

// ExtractUsernameStrict rejects requests without an X-User-ID header.
// All mutation routes use this: every submission must be attributable.
func ExtractUsernameStrict() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Request().Header.Get("X-User-ID")

			if username == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": "X-User-ID header is required",
				})
			}

			c.Set(string(UsernameKey), username)
			return next(c)
		}
	}
}

// GetUsername retrieves the username from the request context
// Returns empty string if not set
func GetUsername(c echo.Context) string {
	username := c.Get(string(UsernameKey))
	if username == nil {
		return ""
	}
	return username.(string)
}
