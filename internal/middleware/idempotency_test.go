package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotentRouter(t *testing.T, status int) (*gin.Engine, *int) {
	t.Helper()
	idem := NewIdempotency(time.Minute)
	t.Cleanup(idem.Stop)

	calls := 0
	router := gin.New()
	router.Use(idem.Handler())
	handler := func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"call": calls})
	}
	router.PUT("/test", handler)
	router.GET("/test", handler)
	return router, &calls
}

func send(router *gin.Engine, method, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/test", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSameRequest(t *testing.T) {
	router, calls := newIdempotentRouter(t, http.StatusOK)

	first := send(router, http.MethodPut, "key-1", `{"denominations":[1,2]}`)
	second := send(router, http.MethodPut, "key-1", `{"denominations":[1,2]}`)

	assert.Equal(t, 1, *calls)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
}

func TestIdempotency_Passthrough(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		firstKey  string
		secondKey string
		body2     string
		status    int
	}{
		{name: "no idempotency key", method: http.MethodPut, status: http.StatusOK},
		{name: "GET is never cached", method: http.MethodGet, firstKey: "k", secondKey: "k", status: http.StatusOK},
		{name: "different keys", method: http.MethodPut, firstKey: "a", secondKey: "b", status: http.StatusOK},
		{name: "different body", method: http.MethodPut, firstKey: "k", secondKey: "k", body2: `{"x":2}`, status: http.StatusOK},
		{name: "errors are not cached", method: http.MethodPut, firstKey: "k", secondKey: "k", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, calls := newIdempotentRouter(t, tt.status)
			body2 := tt.body2
			if body2 == "" {
				body2 = `{"x":1}`
			}

			send(router, tt.method, tt.firstKey, `{"x":1}`)
			w := send(router, tt.method, tt.secondKey, body2)

			assert.Equal(t, 2, *calls)
			assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
		})
	}
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newIdempotencyCache(time.Minute)
	defer c.Stop()
	c.now = func() time.Time { return now }

	c.Set("k", &cachedResponse{StatusCode: http.StatusOK, Body: []byte("ok")})
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("ok"), got.Body)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)

	c.cleanup()
	assert.Zero(t, c.Len())
	assert.NotPanics(t, c.Stop)
}

func TestCaptureWriter_Overflow(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	w := &captureWriter{ResponseWriter: c.Writer}

	_, err := w.Write(make([]byte, maxIdempotentBody))
	require.NoError(t, err)
	assert.False(t, w.overflow)

	_, err = w.WriteString("x")
	require.NoError(t, err)
	assert.True(t, w.overflow)
	assert.Zero(t, w.body.Len())
}
