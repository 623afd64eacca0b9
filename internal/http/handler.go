package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/combination"
	"github.com/guttosm/combination-service/internal/domain/dto"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/i18n"
	"github.com/guttosm/combination-service/internal/middleware"
	"github.com/guttosm/combination-service/internal/service"
)

const (
	// FormatQuery selects the response format of POST /api/combinations.
	FormatQuery = "format"
	// FormatJSON is the default response format.
	FormatJSON = "json"
	// FormatText streams combinations as plain text lines.
	FormatText = "text"

	// CountTrailer and TruncatedTrailer summarize a streamed text response.
	CountTrailer     = "X-Combination-Count"
	TruncatedTrailer = "X-Combination-Truncated"

	textContentType = "text/plain; charset=utf-8"
)

// Handler provides HTTP handlers for combination routes.
type Handler struct {
	enumerator service.Enumerator
	logSink    middleware.LogSink
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogSink sends audit entries for enumerations to sink.
func WithLogSink(sink middleware.LogSink) HandlerOption {
	return func(h *Handler) {
		h.logSink = sink
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(enumerator service.Enumerator, opts ...HandlerOption) *Handler {
	h := &Handler{enumerator: enumerator}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EnumerateCombinations handles POST /api/combinations requests.
//
// @Summary      Enumerate combinations
// @Description  Lists every combination (with repetition) of the denominations that sums exactly to the target, in repeat-before-advance discovery order. Omitted denominations fall back to the active set. With format=text or Accept: text/plain the combinations are streamed one per line.
// @Tags         Combinations
// @Accept       json
// @Produce      json,plain
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        format query string false "Response format" Enums(json, text)
// @Param        request body dto.EnumerateRequest true "Denominations and target"
// @Success      200 {object} dto.SuccessResponse "Combinations in discovery order"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      422 {object} dto.ErrorResponse "Target above the configured maximum"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      504 {object} dto.ErrorResponse i18n.ErrKeyEnumerationTimeout
// @Router       /api/combinations [post]
func (h *Handler) EnumerateCombinations(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindAndValidate[dto.EnumerateRequest](c)
	if err != nil {
		builder.ValidationError(err)
		return
	}

	if wantsText(c) {
		h.streamText(c, req)
		return
	}

	result, err := h.enumerator.Enumerate(c.Request.Context(), req.Denominations, req.TargetValue(), req.Limit)
	if err != nil {
		h.auditFailure(c, req, err)
		writeEnumerationError(builder, err)
		return
	}

	h.audit(c, req, FormatJSON, result.Count, result.Truncated)
	builder.SuccessOK(result)
}

// streamText writes each combination as a line while the search runs.
// Errors found before the first buffered write still get a JSON error;
// later ones cut the body short and omit the trailers.
func (h *Handler) streamText(c *gin.Context, req *dto.EnumerateRequest) {
	header := c.Writer.Header()
	header.Set("Content-Type", textContentType)
	header.Set("Trailer", CountTrailer+", "+TruncatedTrailer)

	lw := combination.NewLineWriter(c.Writer)
	summary, err := h.enumerator.Stream(c.Request.Context(), req.Denominations, req.TargetValue(), req.Limit, lw)
	if err == nil {
		err = lw.Flush()
	}
	if err != nil {
		h.auditFailure(c, req, err)
		if c.Writer.Written() {
			_ = c.Error(err)
			c.Abort()
			return
		}
		header.Del("Content-Type")
		header.Del("Trailer")
		writeEnumerationError(NewResponseBuilder(c), err)
		return
	}

	if !c.Writer.Written() {
		c.Status(http.StatusOK)
		c.Writer.WriteHeaderNow()
	}
	header.Set(CountTrailer, strconv.Itoa(summary.Count))
	header.Set(TruncatedTrailer, strconv.FormatBool(summary.Truncated))

	h.audit(c, req, FormatText, summary.Count, summary.Truncated)
}

func wantsText(c *gin.Context) bool {
	if format := c.Query(FormatQuery); format != "" {
		return strings.EqualFold(format, FormatText)
	}
	accept := c.GetHeader("Accept")
	return strings.HasPrefix(accept, "text/plain")
}

// writeEnumerationError maps enumerator errors to HTTP responses.
func writeEnumerationError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, combination.ErrNonPositiveDenomination):
		builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyNonPositiveDenomination,
			map[string]string{"denominations": err.Error()}, err)
	case errors.Is(err, service.ErrTargetTooLarge):
		builder.Error(http.StatusUnprocessableEntity, i18n.ErrKeyTargetTooLarge, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyEnumerationTimeout, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func (h *Handler) audit(c *gin.Context, req *dto.EnumerateRequest, format string, count int, truncated bool) {
	middleware.AuditLog(h.logSink, c, model.ActionEnumerate, "Combinations enumerated", map[string]interface{}{
		"denominations": req.Denominations,
		"target":        req.TargetValue(),
		"limit":         req.Limit,
		"format":        format,
		"count":         count,
		"truncated":     truncated,
	})
}

func (h *Handler) auditFailure(c *gin.Context, req *dto.EnumerateRequest, err error) {
	middleware.AuditLogError(h.logSink, c, model.ActionEnumerate, "Enumeration failed", err, map[string]interface{}{
		"denominations": req.Denominations,
		"target":        req.TargetValue(),
		"limit":         req.Limit,
	})
}
