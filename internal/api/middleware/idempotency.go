package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const IdempotencyKeyHeader = "Idempotency-Key"

const idempotencyKeyContextKey = "idempotency_key"

// IdempotencyMiddleware resolves the idempotency key for write requests.
// The caller's Idempotency-Key header is used when present; otherwise a key
// is generated so the provider adapter's bounded retry can never create a
// duplicate charge. The provider deduplicates on the key, so no key store is
// kept here.
func IdempotencyMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only apply to POST/PUT/PATCH requests
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
		if key == "" {
			key = uuid.NewString()
			logger.Debug("Generated idempotency key for request",
				zap.String("path", c.Request.URL.Path),
			)
		}

		c.Set(idempotencyKeyContextKey, key)
		c.Next()
	}
}

// GetIdempotencyKey retrieves the resolved idempotency key from context
func GetIdempotencyKey(c *gin.Context) string {
	val, exists := c.Get(idempotencyKeyContextKey)
	if !exists {
		return ""
	}
	key, _ := val.(string)
	return key
}
