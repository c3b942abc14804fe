package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger mencatat satu baris log per request (pengganti gin.Logger)
func RequestLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.FullPath() == "" {
			fields[1] = zap.String("path", c.Request.URL.Path)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			lg.Error("Request failed", fields...)
		case status >= 400:
			lg.Warn("Request rejected", fields...)
		default:
			lg.Info("Request served", fields...)
		}
	}
}
