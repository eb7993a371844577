package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runIdempotency(t *testing.T, method string, headers map[string]string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var key string
	router := gin.New()
	router.Use(IdempotencyMiddleware(zap.NewNop()))
	router.Handle(method, "/", func(c *gin.Context) {
		key = GetIdempotencyKey(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(method, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return key
}

func TestIdempotencyMiddleware_UsesCallerKey(t *testing.T) {
	key := runIdempotency(t, http.MethodPost, map[string]string{
		IdempotencyKeyHeader: "caller-key",
	})
	assert.Equal(t, "caller-key", key)
}

func TestIdempotencyMiddleware_GeneratesKeyWhenAbsent(t *testing.T) {
	key := runIdempotency(t, http.MethodPost, nil)
	require.NotEmpty(t, key)
	_, err := uuid.Parse(key)
	assert.NoError(t, err)
}

func TestIdempotencyMiddleware_SkipsReads(t *testing.T) {
	key := runIdempotency(t, http.MethodGet, map[string]string{
		IdempotencyKeyHeader: "caller-key",
	})
	assert.Empty(t, key)
}
