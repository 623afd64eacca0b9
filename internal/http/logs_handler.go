package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/circuitbreaker"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/i18n"
	"github.com/guttosm/combination-service/internal/service"
)

const (
	defaultLogsLimit = 50
	maxLogsLimit     = 500
)

// LogsPage is the response body of GET /api/logs.
type LogsPage struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Skip    int              `json:"skip"`
}

// LogsHandler exposes stored request and audit logs.
type LogsHandler struct {
	logs service.LoggingService
}

// NewLogsHandler creates a new LogsHandler instance.
func NewLogsHandler(logs service.LoggingService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// Query handles GET /api/logs requests.
//
// @Summary      Query logs
// @Description  Returns stored request and audit log entries, newest first
// @Tags         Logs
// @Produce      json
// @Param        request_id  query string false "Request ID"
// @Param        level       query string false "Log level"
// @Param        action_type query string false "Audit action type"
// @Param        path        query string false "Path substring"
// @Param        start       query string false "RFC3339 lower bound"
// @Param        end         query string false "RFC3339 upper bound"
// @Param        limit       query int    false "Page size"
// @Param        skip        query int    false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse "Log page"
// @Failure      400 {object} dto.ErrorResponse "Invalid time bound"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Router       /api/logs [get]
func (h *LogsHandler) Query(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts := model.LogQueryOptions{
		RequestID:  c.Query("request_id"),
		Level:      c.Query("level"),
		ActionType: c.Query("action_type"),
		Path:       c.Query("path"),
		Limit:      queryInt(c, "limit", defaultLogsLimit),
		Skip:       queryInt(c, "skip", 0),
	}
	if opts.Limit > maxLogsLimit {
		opts.Limit = maxLogsLimit
	}

	var err error
	if opts.StartTime, err = queryTime(c, "start"); err != nil {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidStartTime, map[string]string{"start": "must be RFC3339"}, err)
		return
	}
	if opts.EndTime, err = queryTime(c, "end"); err != nil {
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidEndTime, map[string]string{"end": "must be RFC3339"}, err)
		return
	}

	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		writeLogsError(builder, err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		writeLogsError(builder, err)
		return
	}
	if entries == nil {
		entries = []model.LogEntry{}
	}

	builder.SuccessOK(LogsPage{
		Entries: entries,
		Total:   total,
		Limit:   opts.Limit,
		Skip:    opts.Skip,
	})
}

func writeLogsError(builder *ResponseBuilder, err error) {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyLogStorage, err)
		return
	}
	builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
