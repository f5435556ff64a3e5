package middleware

import (
	"time"

	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/logger"
	"ayurdiet-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// RequestLogger replaces gin.Logger with structured access logs and feeds the
// latency histogram.
func RequestLogger(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		rec.HTTPRequest(c.Request.Method, c.FullPath(), status, elapsed)

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
			"ip", c.ClientIP(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
		}
		if uid := c.GetString(string(domain.KeyUserID)); uid != "" {
			kv = append(kv, "user_id", uid)
		}

		switch {
		case status >= 500:
			logger.Log.Error("request", kv...)
		case status >= 400:
			logger.Log.Warn("request", kv...)
		default:
			logger.Log.Info("request", kv...)
		}
	}
}
