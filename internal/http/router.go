package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/internal/metrics"
	"github.com/guttosm/combination-service/internal/middleware"
	"github.com/guttosm/combination-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds router configuration options.
// RateLimiter and Idempotency are owned by the caller, which stops them.
type RouterConfig struct {
	APIKeys        map[string]bool
	EnableAuth     bool
	CORSOrigins    []string
	RequestTimeout time.Duration
	RateLimiter    *middleware.RateLimiter
	Idempotency    *middleware.Idempotency
	LogSink        middleware.LogSink
	// DenominationSets and Logs are nil when persistence is disabled;
	// their routes are not registered then.
	DenominationSets service.DenominationSetsService
	Logs             service.LoggingService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout: 30 * time.Second,
	}
}

// NewRouter creates and configures the Gin router for the combination service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	for _, group := range routeGroups(handler, &cfg) {
		group.RegisterRoutes(api)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LogSink),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.RateLimit(cfg.authKeys()))
	}
}

// registerInfrastructureRoutes registers health and metrics routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// authKeys returns the API keys in force, or nil when auth is off.
func (cfg *RouterConfig) authKeys() map[string]bool {
	if !cfg.EnableAuth {
		return nil
	}
	return cfg.APIKeys
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if keys := cfg.authKeys(); len(keys) > 0 {
		api.Use(middleware.APIKeyAuth(keys))
	}
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.Idempotency != nil {
		api.Use(cfg.Idempotency.Handler())
	}
}

func routeGroups(handler *Handler, cfg *RouterConfig) []RouteGroup {
	var groups []RouteGroup
	if handler != nil {
		groups = append(groups, NewCombinationRoutes(handler))
	}
	if cfg.DenominationSets != nil {
		groups = append(groups, NewDenominationRoutes(NewDenominationsHandler(cfg.DenominationSets, cfg.LogSink)))
	}
	if cfg.Logs != nil {
		groups = append(groups, NewLogRoutes(NewLogsHandler(cfg.Logs)))
	}
	return groups
}
