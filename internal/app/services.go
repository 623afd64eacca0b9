package app

import (
	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Enumerator *service.EnumeratorService
}

// InitializeServices builds the enumerator from the enumeration and cache settings.
func InitializeServices(cfg config.Config) *ServiceComponents {
	opts := []service.Option{
		service.WithLimits(cfg.Enumeration.MaxCombinations, cfg.Enumeration.MaxTarget),
		service.WithMaxElements(cfg.Enumeration.MaxElements),
	}
	if len(cfg.Enumeration.Denominations) > 0 {
		opts = append(opts, service.WithDenominations(cfg.Enumeration.Denominations))
	}
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards))
	}

	return &ServiceComponents{
		Enumerator: service.NewEnumeratorService(opts...),
	}
}
