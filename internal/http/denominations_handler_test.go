//go:build !integration

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/circuitbreaker"
	"github.com/guttosm/combination-service/internal/domain/dto"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/mocks"
	"github.com/guttosm/combination-service/internal/repository"
	"github.com/guttosm/combination-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupDenominationsRouter(sets *mocks.MockDenominationSetsService, sink *recordingSink) *gin.Engine {
	cfg := DefaultRouterConfig()
	cfg.DenominationSets = sets
	if sink != nil {
		cfg.LogSink = sink
	}
	return NewRouter(nil, nil, cfg)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleSet(version int, denominations ...int) *model.DenominationSet {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.DenominationSet{
		ID:            fmt.Sprintf("65a000000000000000000%03d", version),
		Denominations: denominations,
		Active:        true,
		Version:       version,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestDenominationsHandler_GetActive(t *testing.T) {
	tests := []struct {
		name           string
		set            *model.DenominationSet
		err            error
		expectedStatus int
	}{
		{name: "returns active set", set: sampleSet(3, 1, 2, 5), expectedStatus: http.StatusOK},
		{name: "not found when nothing active", expectedStatus: http.StatusNotFound},
		{name: "unavailable without repository", err: service.ErrRepositoryNotConfigured, expectedStatus: http.StatusServiceUnavailable},
		{name: "unavailable when circuit open", err: circuitbreaker.ErrCircuitOpen, expectedStatus: http.StatusServiceUnavailable},
		{name: "internal error", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets := &mocks.MockDenominationSetsService{}
			if tt.set != nil {
				sets.On("GetActive", mock.Anything).Return(tt.set, nil)
			} else {
				sets.On("GetActive", mock.Anything).Return(nil, tt.err)
			}
			router := setupDenominationsRouter(sets, nil)

			w := doJSON(router, http.MethodGet, "/api/denominations", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.set != nil {
				var resp struct {
					Data model.DenominationSet `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.set.Denominations, resp.Data.Denominations)
				assert.Equal(t, tt.set.Version, resp.Data.Version)
			}
			sets.AssertExpectations(t)
		})
	}
}

func TestDenominationsHandler_Replace(t *testing.T) {
	t.Run("creates and audits a new active set", func(t *testing.T) {
		sets := &mocks.MockDenominationSetsService{}
		sets.On("Create", mock.Anything, []int{1, 2, 5}, "ops").Return(sampleSet(4, 1, 2, 5), nil).Once()
		sink := &recordingSink{}
		router := setupDenominationsRouter(sets, sink)

		w := doJSON(router, http.MethodPut, "/api/denominations", `{"denominations": [1, 2, 5], "created_by": "ops"}`)

		require.Equal(t, http.StatusOK, w.Code)
		sets.AssertExpectations(t)

		var found bool
		for _, e := range sink.Entries() {
			if e.ActionType == model.ActionUpdateDenominations {
				found = true
				assert.Equal(t, 4, e.Fields["version"])
			}
		}
		assert.True(t, found)
	})

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "empty list", body: `{"denominations": []}`, expectedStatus: http.StatusBadRequest},
		{name: "non-positive value", body: `{"denominations": [3, -1]}`, expectedStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{"denominations": "1,2"}`, expectedStatus: http.StatusBadRequest},
		{name: "repository unavailable", body: `{"denominations": [1]}`, serviceErr: service.ErrRepositoryNotConfigured, expectedStatus: http.StatusServiceUnavailable},
		{name: "storage failure", body: `{"denominations": [1]}`, serviceErr: errors.New("write failed"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets := &mocks.MockDenominationSetsService{}
			if tt.serviceErr != nil {
				sets.On("Create", mock.Anything, []int{1}, "").Return(nil, tt.serviceErr).Once()
			}
			router := setupDenominationsRouter(sets, nil)

			w := doJSON(router, http.MethodPut, "/api/denominations", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeFromStatus(tt.expectedStatus), resp.Error)
			sets.AssertExpectations(t)
		})
	}
}

func TestDenominationsHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "updates set", expectedStatus: http.StatusOK},
		{name: "invalid id", err: repository.ErrInvalidID, expectedStatus: http.StatusBadRequest},
		{name: "unknown id", err: repository.ErrNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets := &mocks.MockDenominationSetsService{}
			call := sets.On("Update", mock.Anything, "abc", []int{10, 20}, "").Once()
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(sampleSet(2, 10, 20), nil)
			}
			router := setupDenominationsRouter(sets, nil)

			w := doJSON(router, http.MethodPut, "/api/denominations/abc", `{"denominations": [10, 20]}`)

			assert.Equal(t, tt.expectedStatus, w.Code)
			sets.AssertExpectations(t)
		})
	}
}

func TestDenominationsHandler_UpdateReportsEditor(t *testing.T) {
	sets := &mocks.MockDenominationSetsService{}
	updated := sampleSet(7, 10, 20)
	updated.CreatedBy = "seed"
	updated.UpdatedBy = "ops"
	sets.On("Update", mock.Anything, "abc", []int{10, 20}, "ops").Return(updated, nil).Once()
	router := setupDenominationsRouter(sets, nil)

	w := doJSON(router, http.MethodPut, "/api/denominations/abc", `{"denominations": [10, 20], "created_by": "ops"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data model.DenominationSet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ops", resp.Data.UpdatedBy)
	assert.Equal(t, "seed", resp.Data.CreatedBy)
	assert.Equal(t, 7, resp.Data.Version)
	sets.AssertExpectations(t)
}

func TestDenominationsHandler_History(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedLimit int
	}{
		{name: "default limit", query: "", expectedLimit: maxHistoryLimit},
		{name: "custom limit", query: "?limit=5", expectedLimit: 5},
		{name: "capped limit", query: "?limit=1000", expectedLimit: maxHistoryLimit},
		{name: "invalid limit", query: "?limit=abc", expectedLimit: maxHistoryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets := &mocks.MockDenominationSetsService{}
			sets.On("List", mock.Anything, tt.expectedLimit).Return(nil, nil).Once()
			router := setupDenominationsRouter(sets, nil)

			w := doJSON(router, http.MethodGet, "/api/denominations/history"+tt.query, "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"data":[]`)
			sets.AssertExpectations(t)
		})
	}
}
