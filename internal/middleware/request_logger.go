package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/logger"
)

// unpersistedPaths are logged to the console but never stored.
var unpersistedPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger writes one structured line per request once the handler chain finishes.
// When sink is non-nil the same record is also queued for persistence.
func RequestLogger(sink LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := requestEntry(c, time.Since(start))
		level, err := zerolog.ParseLevel(entry.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}
		log := logger.Logger()
		log.WithLevel(level).
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", entry.StatusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent).
			Msg(entry.Message)

		if isNilSink(sink) || unpersistedPaths[entry.Path] {
			return
		}
		sink.Log(entry)
	}
}

func requestEntry(c *gin.Context, latency time.Duration) *model.LogEntry {
	status := c.Writer.Status()
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      getLogLevel(status),
		Message:    "HTTP request",
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		StatusCode: status,
		Duration:   latency.Milliseconds(),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
	if last := c.Errors.Last(); last != nil {
		entry.Error = last.Error()
	}
	return entry
}

// isNilSink reports whether sink is nil or a nil *AsyncLogger.
func isNilSink(sink LogSink) bool {
	if sink == nil {
		return true
	}
	al, ok := sink.(*AsyncLogger)
	return ok && al == nil
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
