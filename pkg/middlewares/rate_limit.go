package middlewares

import (
	"strconv"
	"time"

	"job_board_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Limiter is the slice of the rate-limit repository the middleware needs.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) (allowed bool, count int64, err error)
}

// RateLimitMiddleware caps requests per authenticated party inside a fixed
// window. Counting failures let the request through; the limiter protects
// the service, it is not an availability dependency.
func RateLimitMiddleware(limiter Limiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, _ := c.Locals(TokenPartyID).(string)
		if key == "" {
			key = c.IP()
		}

		allowed, count, err := limiter.Allow("rest:"+key, limit, window)
		if err != nil {
			logger.Log.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		if !allowed {
			c.Set("X-RateLimit-Remaining", "0")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded",
			})
		}

		remaining := limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		return c.Next()
	}
}
