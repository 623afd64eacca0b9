// Package app wires configuration, services, storage and the HTTP router
// into a runnable application.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/http"
	"github.com/rs/zerolog/log"
)

// App is a fully wired application.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
	Routing  *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
// The logger must be initialized before calling it.
func InitializeApp(cfg config.Config) *App {
	services := InitializeServices(cfg)

	defaults := cfg.Enumeration.Denominations
	if len(defaults) == 0 {
		defaults = config.DefaultDenominations
	}
	db := InitializeDatabase(cfg.Database, defaults, services.Enumerator)

	routing := InitializeRouter(services.Enumerator, db, cfg)

	return &App{
		Router:   http.NewRouter(routing.Handler, routing.HealthHandler, routing.Config),
		Services: services,
		Database: db,
		Routing:  routing,
	}
}

// Close stops background workers and disconnects from MongoDB. Log
// entries still queued are written before the database closes.
func (a *App) Close(ctx context.Context) error {
	a.Routing.Stop()
	a.Services.Enumerator.Stop()

	if err := a.Database.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		return fmt.Errorf("close database: %w", err)
	}
	log.Info().Msg("Application resources released")
	return nil
}
