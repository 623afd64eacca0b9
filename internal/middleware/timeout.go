package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/domain/dto"
	"github.com/guttosm/combination-service/internal/i18n"
)

// Timeout bounds the request context by d. Handlers observe the deadline
// through c.Request.Context() and report the timeout themselves; the
// middleware never writes concurrently with them. If the deadline passed
// and the handler returned without writing, a 504 is sent.
// A non-positive d disables the middleware.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout,
				dto.NewError(dto.ErrCodeTimeout, i18n.Message(c, i18n.ErrKeyTimeout)).WithRequestID(GetRequestID(c)))
		}
	}
}
