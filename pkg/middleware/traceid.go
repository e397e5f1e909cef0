package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"simplifytour/pkg/logger"
)

func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)
		c.Writer.Header().Set("X-Trace-ID", traceID)
		c.Next()
	}
}

// RequestLogger writes one line per request through the application logger.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		line := []interface{}{
			c.Request.Method, " ", c.Request.URL.Path, " ", status, " ",
			time.Since(start).Round(time.Microsecond), " trace=", c.GetString("trace_id"),
		}
		switch {
		case status >= 500:
			log.Error(line...)
		case status >= 400:
			log.Warn(line...)
		default:
			log.Info(line...)
		}
	}
}
