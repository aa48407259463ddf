package middleware

import (
	"strings"
	"time"

	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags each request with an id and a logger carrying it.
// An incoming X-Request-ID header is reused.
func RequestID(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(types.RequestIDHeader))
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(types.ContextRequestIDKey, id)
		c.Set(types.ContextLoggerKey, log.With("request_id", id))
		c.Header(types.RequestIDHeader, id)
		c.Next()
	}
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id := c.GetString(types.ContextRequestIDKey); id != "" {
			fields = append(fields, "request_id", id)
		}
		if u, ok := c.Get(types.ContextUserKey); ok {
			if user, ok := u.(AuthenticatedUser); ok {
				fields = append(fields, "user_id", user.ID)
			}
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
