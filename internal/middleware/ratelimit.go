package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"rentora/internal/caching"

	"github.com/labstack/echo/v4"
)

// RateLimit caps requests per client IP within the window. Redis failures
// let the request through rather than blocking traffic.
func RateLimit(cacheSvc caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s", c.Path(), c.RealIP())
			limited, err := cacheSvc.IsRateLimited(c.Request().Context(), key, limit, window)
			if err != nil {
				log.Printf("Rate limit check failed for %s: %v", key, err)
				return next(c)
			}
			if limited {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}
			return next(c)
		}
	}
}
