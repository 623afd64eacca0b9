package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup registers a set of related routes on an API group.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// CombinationRoutes registers the enumeration endpoint.
type CombinationRoutes struct {
	handler *Handler
}

// NewCombinationRoutes creates the combination route group.
func NewCombinationRoutes(handler *Handler) *CombinationRoutes {
	return &CombinationRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *CombinationRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/combinations", r.handler.EnumerateCombinations)
}

// DenominationRoutes registers denomination set endpoints.
type DenominationRoutes struct {
	handler *DenominationsHandler
}

// NewDenominationRoutes creates the denomination route group.
func NewDenominationRoutes(handler *DenominationsHandler) *DenominationRoutes {
	return &DenominationRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *DenominationRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/denominations", r.handler.GetActive)
	rg.PUT("/denominations", r.handler.Replace)
	rg.GET("/denominations/history", r.handler.History)
	rg.PUT("/denominations/:id", r.handler.Update)
}

// LogRoutes registers the log query endpoint.
type LogRoutes struct {
	handler *LogsHandler
}

// NewLogRoutes creates the log route group.
func NewLogRoutes(handler *LogsHandler) *LogRoutes {
	return &LogRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *LogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", r.handler.Query)
}
