package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireInternalToken guards routes meant for service-to-service calls
// only, such as the external worker's finalize callback. The caller must
// present the shared token in X-Internal-Service.
func RequireInternalToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := c.Request().Header.Get("X-Internal-Service")

			if token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": "internal service token required",
				})
			}

			return next(c)
		}
	}
}
