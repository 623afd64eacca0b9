//go:build !integration

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/circuitbreaker"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupLogsRouter(logs *mocks.MockLoggingService) *gin.Engine {
	cfg := DefaultRouterConfig()
	cfg.Logs = logs
	return NewRouter(nil, nil, cfg)
}

func TestLogsHandler_Query(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []model.LogEntry{{Level: "info", Message: "HTTP request", Path: "/api/combinations"}}

	logs := &mocks.MockLoggingService{}
	matchOpts := mock.MatchedBy(func(o model.LogQueryOptions) bool {
		return o.Level == "info" && o.ActionType == model.ActionEnumerate && o.Limit == 10 && o.Skip == 5 &&
			o.StartTime != nil && o.StartTime.Equal(start) && o.EndTime == nil
	})
	logs.On("QueryLogs", mock.Anything, matchOpts).Return(entries, nil).Once()
	logs.On("CountLogs", mock.Anything, matchOpts).Return(int64(42), nil).Once()

	router := setupLogsRouter(logs)
	w := doJSON(router, http.MethodGet, "/api/logs?level=info&action_type=enumerate&limit=10&skip=5&start=2025-01-01T00:00:00Z", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data LogsPage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.Data.Total)
	assert.Equal(t, 10, resp.Data.Limit)
	assert.Equal(t, 5, resp.Data.Skip)
	require.Len(t, resp.Data.Entries, 1)
	assert.Equal(t, "/api/combinations", resp.Data.Entries[0].Path)
	logs.AssertExpectations(t)
}

func TestLogsHandler_Limits(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedLimit int
	}{
		{name: "default", query: "", expectedLimit: defaultLogsLimit},
		{name: "capped", query: "?limit=10000", expectedLimit: maxLogsLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &mocks.MockLoggingService{}
			byLimit := mock.MatchedBy(func(o model.LogQueryOptions) bool { return o.Limit == tt.expectedLimit })
			logs.On("QueryLogs", mock.Anything, byLimit).Return(nil, nil).Once()
			logs.On("CountLogs", mock.Anything, byLimit).Return(int64(0), nil).Once()

			w := doJSON(setupLogsRouter(logs), http.MethodGet, "/api/logs"+tt.query, "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"entries":[]`)
			logs.AssertExpectations(t)
		})
	}
}

func TestLogsHandler_Errors(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		queryErr       error
		expectedStatus int
	}{
		{name: "bad start", query: "?start=yesterday", expectedStatus: http.StatusBadRequest},
		{name: "bad end", query: "?end=2025-13-01", expectedStatus: http.StatusBadRequest},
		{name: "circuit open", queryErr: circuitbreaker.ErrCircuitOpen, expectedStatus: http.StatusServiceUnavailable},
		{name: "query failure", queryErr: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := &mocks.MockLoggingService{}
			if tt.queryErr != nil {
				logs.On("QueryLogs", mock.Anything, mock.Anything).Return(nil, tt.queryErr).Once()
			}

			w := doJSON(setupLogsRouter(logs), http.MethodGet, "/api/logs"+tt.query, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			logs.AssertExpectations(t)
		})
	}
}
