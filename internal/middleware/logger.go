package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"roomscheduler/internal/pkg/logger"
	"roomscheduler/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"user_id", c.GetInt64(ctxUserID),
			"role", c.GetString(ctxRole),
			"request_id", RequestIDFrom(c),
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http request", attrs...)
		case status >= http.StatusBadRequest:
			log.Warn("http request", attrs...)
		default:
			log.Info("http request", attrs...)
		}
	}
}

// ErrorLogger logs errors attached to the context and recovers from panics.
func ErrorLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				log.Error("panic recovered",
					"error", fmt.Sprintf("%v", recovered),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", RequestIDFrom(c),
					"stack", string(debug.Stack()),
				)
				response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
				return
			}

			for _, err := range c.Errors {
				log.Error("request error",
					"error", err.Error(),
					"status", c.Writer.Status(),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"user_id", c.GetInt64(ctxUserID),
					"request_id", RequestIDFrom(c),
				)
			}
		}()

		c.Next()
	}
}
