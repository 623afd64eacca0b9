package app

import (
	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/http"
	"github.com/guttosm/combination-service/internal/middleware"
	"github.com/guttosm/combination-service/internal/service"
)

// RouterComponents holds router-related components. The middleware
// instances run background goroutines and are released by Stop.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	AsyncLogger   *middleware.AsyncLogger
	RateLimiter   *middleware.RateLimiter
	Idempotency   *middleware.Idempotency
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(enumerator service.Enumerator, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	components := &RouterComponents{
		HealthHandler: http.NewHealthHandler(),
		Idempotency:   middleware.NewIdempotency(middleware.IdempotencyKeyTTL),
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.EnableAuth = cfg.Auth.Enabled
	routerCfg.APIKeys = cfg.Auth.APIKeys
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.Idempotency = components.Idempotency

	if cfg.Server.RateLimit > 0 {
		components.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		routerCfg.RateLimiter = components.RateLimiter
	}

	var handlerOpts []http.HandlerOption
	if db != nil {
		components.AsyncLogger = middleware.NewAsyncLogger(db.LoggingService, middleware.DefaultAsyncLoggerConfig())
		if components.AsyncLogger != nil {
			routerCfg.LogSink = components.AsyncLogger
			handlerOpts = append(handlerOpts, http.WithLogSink(components.AsyncLogger))
		}
		routerCfg.DenominationSets = db.DenominationSets
		routerCfg.Logs = db.LoggingService

		components.HealthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		components.HealthHandler.RegisterCircuitBreaker("mongodb_denomination_sets", db.DenominationSetsBreaker)
		components.HealthHandler.RegisterCircuitBreaker("mongodb_logs", db.LogsBreaker)
	}

	components.Handler = http.NewHandler(enumerator, handlerOpts...)
	components.Config = routerCfg
	return components
}

// Stop releases the middleware background workers. Pending log entries
// are flushed first.
func (r *RouterComponents) Stop() {
	r.AsyncLogger.Stop()
	if r.RateLimiter != nil {
		r.RateLimiter.Stop()
	}
	if r.Idempotency != nil {
		r.Idempotency.Stop()
	}
}
