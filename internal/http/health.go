package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/circuitbreaker"
)

// readinessTimeout bounds all dependency checks of one readiness check.
const readinessTimeout = 2 * time.Second

// HealthChecker defines the interface for health check operations.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to the HealthChecker interface.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f(ctx).
func (f HealthCheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	mu              sync.RWMutex
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker registers a dependency check for the readiness endpoint.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.circuitBreakers[name] = cb
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router gin.IRoutes) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness endpoint.
// @Summary     Liveness check
// @Description Returns OK while the process is running.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReadinessReport is the body of GET /readyz.
type ReadinessReport struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
}

// Readiness handles the readiness endpoint.
// @Summary     Readiness check
// @Description Returns OK if every registered dependency check passes and no circuit breaker is open.
// @Tags        Health
// @Produce     json
// @Success     200 {object} ReadinessReport "Service is ready"
// @Failure     503 {object} ReadinessReport "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	report := h.runChecks(ctx)
	status := http.StatusOK
	if report.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// runChecks runs the dependency checks in parallel and reads breaker states.
func (h *HealthHandler) runChecks(ctx context.Context) ReadinessReport {
	h.mu.RLock()
	defer h.mu.RUnlock()

	report := ReadinessReport{Status: "ok", Checks: make(map[string]string)}
	var (
		wg  sync.WaitGroup
		rmu sync.Mutex
	)
	fail := func(name, reason string) {
		rmu.Lock()
		defer rmu.Unlock()
		report.Checks[name] = reason
		report.Status = "degraded"
	}

	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			if err := checker.Check(ctx); err != nil {
				fail(name, err.Error())
				return
			}
			rmu.Lock()
			report.Checks[name] = "ok"
			rmu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		report.Checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			report.Status = "degraded"
		}
	}

	if len(report.Checks) == 0 {
		report.Checks["service"] = "ok"
	}
	return report
}
