//go:build integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/circuitbreaker"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/middleware"
	"github.com/guttosm/combination-service/internal/repository"
	"github.com/guttosm/combination-service/internal/service"
	"github.com/guttosm/combination-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type integrationStack struct {
	router     *gin.Engine
	enumerator *service.EnumeratorService
	logger     *middleware.AsyncLogger
}

func setupIntegrationStack(t *testing.T) *integrationStack {
	t.Helper()
	ctx := context.Background()

	db, err := repository.NewMongoDB(testutil.SharedURI(), testutil.DBName(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })

	breaker := func(name string) *circuitbreaker.CircuitBreaker {
		cfg := circuitbreaker.DefaultConfig()
		cfg.Name = name
		return circuitbreaker.New(cfg)
	}
	setsRepo := repository.NewDenominationSetsRepositoryWithCircuitBreaker(repository.NewDenominationSetsRepository(db), breaker("it-sets"))
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breaker("it-logs"))

	enumerator := service.NewEnumeratorService(service.WithCache(100, 5*time.Minute, 4))
	t.Cleanup(enumerator.Stop)

	sets := service.NewDenominationSetsService(setsRepo, enumerator)
	_, err = sets.Seed(ctx, []int{2})
	require.NoError(t, err)

	logs := service.NewLoggingService(logsRepo)
	asyncLogger := middleware.NewAsyncLogger(logs, middleware.AsyncLoggerConfig{FlushInterval: 50 * time.Millisecond})
	t.Cleanup(asyncLogger.Stop)

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", HealthCheckFunc(db.HealthCheck))

	cfg := DefaultRouterConfig()
	cfg.LogSink = asyncLogger
	cfg.DenominationSets = sets
	cfg.Logs = logs

	return &integrationStack{
		router:     NewRouter(NewHandler(enumerator, WithLogSink(asyncLogger)), health, cfg),
		enumerator: enumerator,
		logger:     asyncLogger,
	}
}

func (s *integrationStack) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestIntegration_ReplaceDenominationsThenEnumerate(t *testing.T) {
	stack := setupIntegrationStack(t)

	w := stack.do(http.MethodPost, "/api/combinations", `{"target": 3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"combinations":[]`)

	w = stack.do(http.MethodPut, "/api/denominations", `{"denominations": [1, 2], "created_by": "it"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var replaced struct {
		Data model.DenominationSet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &replaced))
	assert.Equal(t, []int{1, 2}, replaced.Data.Denominations)
	assert.Equal(t, 2, replaced.Data.Version)
	assert.Equal(t, []int{1, 2}, stack.enumerator.Denominations())

	w = stack.do(http.MethodPost, "/api/combinations?format=text", `{"target": 3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1 1 1\n1 2\n", w.Body.String())

	w = stack.do(http.MethodGet, "/api/denominations/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Data []model.DenominationSet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.Data, 2)
	assert.True(t, history.Data[0].Active)
	assert.False(t, history.Data[1].Active)
}

func TestIntegration_AuditLogsAreQueryable(t *testing.T) {
	stack := setupIntegrationStack(t)

	w := stack.do(http.MethodPost, "/api/combinations", `{"denominations": [1, 2], "target": 4}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Eventually(t, func() bool {
		w := stack.do(http.MethodGet, "/api/logs?action_type="+model.ActionEnumerate, "")
		if w.Code != http.StatusOK {
			return false
		}
		var page struct {
			Data LogsPage `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			return false
		}
		return page.Data.Total == 1 && len(page.Data.Entries) == 1
	}, 5*time.Second, 100*time.Millisecond)

	assert.Zero(t, stack.logger.Stats().Dropped)
}

func TestIntegration_Readiness(t *testing.T) {
	stack := setupIntegrationStack(t)

	w := stack.do(http.MethodGet, "/readyz", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"mongodb":"ok"}}`, w.Body.String())
}
