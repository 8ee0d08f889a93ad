package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/pkg/logger"
)

// RequestLogger writes one line per completed request, at Warn for client
// errors and Error for server errors.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		entry := logger.WithRequestContext(log, GetRequestID(c), c.Request.Method, c.Request.URL.Path).
			WithFields(logrus.Fields{
				"status":    status,
				"latency":   time.Since(start),
				"client_ip": c.ClientIP(),
			})
		if c.Request.URL.RawQuery != "" {
			entry = entry.WithField("query", c.Request.URL.RawQuery)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
	}
}
