package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// writeRateLimit is the sustained number of roster writes per second allowed
// for one client IP.
const writeRateLimit = 20

// RateLimiter limits roster writes (joins and leaves) per client IP.
func RateLimiter() echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		// In-memory counts; fine for a single instance since rosters are in-memory too.
		Store: middleware.NewRateLimiterMemoryStore(writeRateLimit),

		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("Rate limit exceeded", "client", identifier)
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"code":    "rate_limited",
				"message": "too many requests, please try again later",
			})
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
