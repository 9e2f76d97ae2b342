package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request id or mints one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("requestID", reqID)
		c.Writer.Header().Set(RequestIDHeader, reqID)
		c.Next()
	}
}

// RequestLogger writes one entry per request once the handlers have run,
// tagged with the request id, the session and the token subject when known.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"status_code": c.Writer.Status(),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  time.Since(start).Milliseconds(),
		}
		for field, key := range contextLogFields {
			if v := c.GetString(key); v != "" {
				fields[field] = v
			}
		}

		level, msg := completionLevel(c)
		logger.WithFields(fields).Log(level, msg)
	}
}

var contextLogFields = map[string]string{
	"request_id": "requestID",
	"session_id": "sessionID",
	"subject":    "subject",
}

func completionLevel(c *gin.Context) (logrus.Level, string) {
	if private := c.Errors.ByType(gin.ErrorTypePrivate); len(private) > 0 {
		return logrus.ErrorLevel, private.String()
	}
	switch status := c.Writer.Status(); {
	case status >= 500:
		return logrus.ErrorLevel, "Request completed with server error"
	case status >= 400:
		return logrus.WarnLevel, "Request completed with client error"
	default:
		return logrus.InfoLevel, "Request completed"
	}
}
