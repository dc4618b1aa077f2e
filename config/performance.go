package config

import (
	"log/slog"
	"time"

	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const slowRequest = 200 * time.Millisecond

// RequestLogger injects a request-scoped logger and logs timing for every request.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		logger := base.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(utils.WithLogger(c.Request.Context(), logger))

		c.Next()

		latency := time.Since(start)
		logger.Info("Request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", latency),
		)
		if latency > slowRequest {
			logger.Warn("Slow request", slog.Duration("latency", latency))
		}
	}
}
