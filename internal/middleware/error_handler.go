package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/domain/dto"
	"github.com/guttosm/combination-service/internal/i18n"
	"github.com/guttosm/combination-service/internal/logger"
)

// StatusError carries the HTTP status and client message for an error
// attached with c.Error. Message may be an i18n key.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ErrorHandler logs errors attached to the gin context and, if nothing has
// been written yet, responds with the matching ErrorResponse.
// Unwritten errors without a StatusError become 500s.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID := GetRequestID(c)
		status := http.StatusInternalServerError
		message := i18n.ErrKeyInternalError

		var statusErr *StatusError
		switch {
		case errors.As(err, &statusErr):
			status = statusErr.Status
			message = statusErr.Message
		case c.Writer.Written():
			status = c.Writer.Status()
		}

		log := logger.Logger()
		event := log.Warn()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("request_id", requestID).
			Err(err).
			Int("status_code", status).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !c.Writer.Written() {
			c.JSON(status, dto.NewError(dto.ErrCodeFromStatus(status), i18n.Message(c, message)).WithRequestID(requestID))
		}
	}
}
