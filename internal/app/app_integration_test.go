//go:build integration

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveApp(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInitializeApp_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	cfg := integrationConfig(t)
	application := InitializeApp(cfg)
	require.NotNil(t, application.Database)

	w := serveApp(application.Router, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)

	w = serveApp(application.Router, http.MethodPut, "/api/denominations", `{"denominations": [1, 2]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = serveApp(application.Router, http.MethodPost, "/api/combinations?format=text", `{"target": 3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1 1 1\n1 2\n", w.Body.String())

	// Close flushes queued audit entries before disconnecting.
	require.NoError(t, application.Close(ctx))

	verify := InitializeDatabase(cfg.Database, nil, nil)
	require.NotNil(t, verify)
	defer func() { _ = verify.Close(ctx) }()

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	entries, err := verify.LoggingService.QueryLogs(queryCtx, model.LogQueryOptions{ActionType: model.ActionEnumerate, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	raw, err := json.Marshal(entries[0].Fields)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"format":"text"`)
}
