package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger attaches a request scoped logger to the request context and
// logs one line per completed request.
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		lg := base.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(lg.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		ev := lg.Info()
		if status >= 500 {
			ev = lg.Error()
		} else if status >= 400 {
			ev = lg.Warn()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("uid", c.GetString(KeyUID)).
			Msg("request")
	}
}

// LoggerFrom returns the request logger, or a disabled one when RequestLogger
// is not installed.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	return zerolog.Ctx(c.Request.Context())
}
