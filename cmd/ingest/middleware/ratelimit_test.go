package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/soundlane/ingest/common/logger"
	"github.com/soundlane/ingest/common/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableLimiter returns a limiter whose backend connection always
// fails, forcing every check down the error path
func unreachableLimiter() *ratelimit.RateLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	return ratelimit.NewRateLimiter(client, logger.New("error", "json"))
}

func runLimited(t *testing.T, mw echo.MiddlewareFunc, username string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if username != "" {
		c.Set(string(UsernameKey), username)
	}

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestGlobalRateLimit_FailsOpenOnBackendError(t *testing.T) {
	mw := GlobalRateLimitMiddleware(unreachableLimiter(), 120)
	rec := runLimited(t, mw, "user-1")

	assert.Equal(t, http.StatusOK, rec.Code, "backend failure must not block submissions")
}

func TestUserRateLimit_FailsOpenOnBackendError(t *testing.T) {
	mw := UserRateLimitMiddleware(unreachableLimiter(), 10, 60)
	rec := runLimited(t, mw, "user-1")

	assert.Equal(t, http.StatusOK, rec.Code, "backend failure must not block submissions")
}

func TestUserRateLimit_SkipsAnonymousRequests(t *testing.T) {
	// No username in context means another guard rejected or will reject
	// the request; the limiter has no key to count against
	mw := UserRateLimitMiddleware(unreachableLimiter(), 10, 60)
	rec := runLimited(t, mw, "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
