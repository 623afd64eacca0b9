package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/domain/dto"
	"github.com/guttosm/combination-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth returns a middleware that validates API keys.
// It checks the X-API-Key header first, then falls back to the api_key query parameter.
// If validKeys is empty, authentication is disabled.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := presentedAPIKey(c)
		requestID := GetRequestID(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewError(dto.ErrCodeUnauthorized, i18n.Message(c, i18n.ErrKeyAPIKeyRequired)).WithRequestID(requestID))
			return
		}

		if !keyAllowed(validKeys, key) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewError(dto.ErrCodeUnauthorized, i18n.Message(c, i18n.ErrKeyInvalidAPIKey)).WithRequestID(requestID))
			return
		}

		c.Next()
	}
}

// presentedAPIKey returns the X-API-Key header, or the api_key query parameter.
func presentedAPIKey(c *gin.Context) string {
	if key := c.GetHeader(APIKeyHeader); key != "" {
		return key
	}
	return c.Query(APIKeyQuery)
}

func keyAllowed(validKeys map[string]bool, key string) bool {
	found := false
	for candidate, enabled := range validKeys {
		if enabled && subtle.ConstantTimeCompare([]byte(candidate), []byte(key)) == 1 {
			found = true
		}
	}
	return found
}
