package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

type requestLoggerMiddleware struct {
	logger *logrus.Logger
}

// NewRequestLoggerMiddleware tags every request with an id and logs its
// outcome once the handler chain returns.
func NewRequestLoggerMiddleware(logger *logrus.Logger) Middleware {
	return &requestLoggerMiddleware{logger: logger}
}

func (m *requestLoggerMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDHeader, requestID)

		err := c.Next()

		entry := m.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if err != nil {
			entry.WithError(err).Warn("request failed")
			return err
		}
		entry.Debug("request handled")
		return nil
	}
}
