package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/circuitbreaker"
	"github.com/guttosm/combination-service/internal/combination"
	"github.com/guttosm/combination-service/internal/domain/dto"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/i18n"
	"github.com/guttosm/combination-service/internal/middleware"
	"github.com/guttosm/combination-service/internal/repository"
	"github.com/guttosm/combination-service/internal/service"
)

// maxHistoryLimit caps GET /api/denominations/history.
const maxHistoryLimit = 100

// DenominationsHandler provides HTTP handlers for denomination set routes.
type DenominationsHandler struct {
	sets    service.DenominationSetsService
	logSink middleware.LogSink
}

// NewDenominationsHandler creates a new DenominationsHandler instance.
func NewDenominationsHandler(sets service.DenominationSetsService, logSink middleware.LogSink) *DenominationsHandler {
	return &DenominationsHandler{
		sets:    sets,
		logSink: logSink,
	}
}

// GetActive handles GET /api/denominations requests.
//
// @Summary      Get active denominations
// @Description  Returns the denomination set used when a request omits denominations
// @Tags         Denominations
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Active denomination set"
// @Failure      404 {object} dto.ErrorResponse i18n.ErrKeyNoActiveSet
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Router       /api/denominations [get]
func (h *DenominationsHandler) GetActive(c *gin.Context) {
	builder := NewResponseBuilder(c)

	set, err := h.sets.GetActive(c.Request.Context())
	if err != nil {
		writeSetError(builder, err)
		return
	}
	if set == nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNoActiveSet, nil)
		return
	}

	builder.SuccessOK(set)
}

// Replace handles PUT /api/denominations requests. The new set becomes
// active and is applied to the enumerator.
//
// @Summary      Replace active denominations
// @Description  Stores a new active denomination set (version incremented) and clears cached results
// @Tags         Denominations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.UpdateDenominationsRequest true "Denominations"
// @Success      200 {object} dto.SuccessResponse "New active set"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Router       /api/denominations [put]
func (h *DenominationsHandler) Replace(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.UpdateDenominationsRequest](c)
	if err != nil {
		builder.ValidationError(err)
		return
	}

	set, err := h.sets.Create(c.Request.Context(), req.Denominations, req.CreatedBy)
	if err != nil {
		middleware.AuditLogError(h.logSink, c, model.ActionUpdateDenominations, "Denomination update failed", err,
			map[string]interface{}{"denominations": req.Denominations})
		writeSetError(builder, err)
		return
	}

	middleware.AuditLog(h.logSink, c, model.ActionUpdateDenominations, "Denominations updated", map[string]interface{}{
		"denominations": set.Denominations,
		"version":       set.Version,
		"id":            set.ID,
	})
	builder.SuccessOK(set)
}

// Update handles PUT /api/denominations/:id requests.
//
// @Summary      Update a denomination set
// @Description  Changes the denominations of a stored set; an active set is reapplied
// @Tags         Denominations
// @Accept       json
// @Produce      json
// @Param        id path string true "Denomination set ID"
// @Param        request body dto.UpdateDenominationsRequest true "Denominations"
// @Success      200 {object} dto.SuccessResponse "Updated set"
// @Failure      400 {object} dto.ErrorResponse "Bad request"
// @Failure      404 {object} dto.ErrorResponse "Set not found"
// @Router       /api/denominations/{id} [put]
func (h *DenominationsHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.UpdateDenominationsRequest](c)
	if err != nil {
		builder.ValidationError(err)
		return
	}

	id := c.Param("id")
	set, err := h.sets.Update(c.Request.Context(), id, req.Denominations, req.CreatedBy)
	if err != nil {
		writeSetError(builder, err)
		return
	}

	middleware.AuditLog(h.logSink, c, model.ActionUpdateDenominations, "Denomination set updated", map[string]interface{}{
		"denominations": set.Denominations,
		"version":       set.Version,
		"id":            id,
	})
	builder.SuccessOK(set)
}

// History handles GET /api/denominations/history requests.
//
// @Summary      List denomination sets
// @Description  Returns stored denomination sets, newest first
// @Tags         Denominations
// @Produce      json
// @Param        limit query int false "Limit number of results"
// @Success      200 {object} dto.SuccessResponse "Denomination set history"
// @Failure      503 {object} dto.ErrorResponse "Storage unavailable"
// @Router       /api/denominations/history [get]
func (h *DenominationsHandler) History(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := queryInt(c, "limit", maxHistoryLimit)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	sets, err := h.sets.List(c.Request.Context(), limit)
	if err != nil {
		writeSetError(builder, err)
		return
	}
	if sets == nil {
		sets = []model.DenominationSet{}
	}

	builder.SuccessOK(sets)
}

// writeSetError maps denomination set errors to HTTP responses.
func writeSetError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyDenominations), errors.Is(err, combination.ErrNonPositiveDenomination):
		builder.ErrorWithDetails(http.StatusBadRequest, err.Error(),
			map[string]string{"denominations": "must be positive integers"}, err)
	case errors.Is(err, repository.ErrInvalidID):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidSetID, err)
	case errors.Is(err, repository.ErrNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeySetNotFound, err)
	case errors.Is(err, service.ErrRepositoryNotConfigured), errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyDenominationStorage, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

// queryInt returns a positive integer query parameter, or def.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
