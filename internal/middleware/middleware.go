package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"
)

// CorrelationID tags every request with a UUID request id. The id is echoed
// in the X-Request-ID header and shown on the error page.
func CorrelationID() fiber.Handler {
	return requestid.New(requestid.Config{
		Generator: uuid.NewString,
	})
}

// RequestID returns the correlation id of the current request.
func RequestID(c fiber.Ctx) string {
	return requestid.FromContext(c)
}

// RateLimit limits each client IP to max requests per minute. A nil storage
// keeps counters in process memory.
func RateLimit(max int, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		Storage:    storage,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": "error",
				"error":  "Rate limit exceeded. Please try again later.",
			})
		},
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
	})
}

// NewRedisStorage connects limiter storage to the Redis instance at url.
// Returns nil when url is empty.
func NewRedisStorage(url string) fiber.Storage {
	if url == "" {
		return nil
	}
	return redis.New(redis.Config{
		URL: url,
	})
}
