package middleware

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig configures a Redis-backed fixed-window rate limiter.
type RateLimitConfig struct {
	// Max requests allowed per window.
	Max int
	// Window length.
	Window time.Duration
	// KeyFunc derives the limiter key for a request. Defaults to client IP.
	KeyFunc func(c *fiber.Ctx) string
	// FailOpen allows requests through when Redis is unavailable.
	// Use FailOpen for general traffic and fail closed on sensitive routes.
	FailOpen bool
}

// RateLimit returns a middleware enforcing cfg against the given Redis client.
// Counters use INCR with an expiry set on first increment, so a window starts
// at the first request rather than on a fixed clock boundary.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig) fiber.Handler {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *fiber.Ctx) string { return c.IP() }
	}

	return func(c *fiber.Ctx) error {
		// Skip limiting in tests and local development
		env := os.Getenv("APP_ENV")
		if env == "test" || env == "development" {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.Route().Path, cfg.KeyFunc(c))
		ctx := c.UserContext()

		if rdb == nil {
			if cfg.FailOpen {
				return c.Next()
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service temporarily unavailable",
			})
		}

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			RedisErrors.WithLabelValues("ratelimit").Inc()
			Logger.WarnContext(ctx, "rate limiter redis error", "error", err, "fail_open", cfg.FailOpen)
			if cfg.FailOpen {
				return c.Next()
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service temporarily unavailable",
			})
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, cfg.Window).Err(); err != nil {
				Logger.WarnContext(ctx, "rate limiter expire failed", "error", err, "key", key)
			}
		}

		remaining := cfg.Max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > cfg.Max {
			RateLimitRejections.WithLabelValues(c.Route().Path).Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		}

		return c.Next()
	}
}
