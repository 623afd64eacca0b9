package app

import (
	"context"
	"time"

	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/circuitbreaker"
	"github.com/guttosm/combination-service/internal/repository"
	"github.com/guttosm/combination-service/internal/service"
	"github.com/rs/zerolog/log"
)

const databaseSetupTimeout = 10 * time.Second

// Circuit breaker names, also used as metric labels.
const (
	denominationSetsBreaker = "mongodb-denomination-sets"
	logsBreaker             = "mongodb-logs"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                      *repository.MongoDB
	DenominationSets        service.DenominationSetsService
	LoggingService          service.LoggingService
	DenominationSetsBreaker *circuitbreaker.CircuitBreaker
	LogsBreaker             *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB, builds the repositories behind
// circuit breakers and seeds the active denomination set. The active set is
// pushed to applier. Returns nil if the database is disabled or unreachable.
func InitializeDatabase(cfg config.DatabaseConfig, defaults []int, applier service.DenominationApplier) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	return setupDatabase(db, cfg, defaults, applier)
}

func setupDatabase(db *repository.MongoDB, cfg config.DatabaseConfig, defaults []int, applier service.DenominationApplier) *DatabaseComponents {
	ctx, cancel := context.WithTimeout(context.Background(), databaseSetupTimeout)
	defer cancel()

	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Dur("ttl", cfg.LogsTTL).Msg("Failed to set logs TTL index")
	}

	setsCB := newCircuitBreaker(cfg, denominationSetsBreaker)
	logsCB := newCircuitBreaker(cfg, logsBreaker)

	setsRepo := repository.NewDenominationSetsRepositoryWithCircuitBreaker(repository.NewDenominationSetsRepository(db), setsCB)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	sets := service.NewDenominationSetsService(setsRepo, applier)
	if _, err := sets.Seed(ctx, defaults); err != nil {
		log.Warn().Err(err).Msg("Failed to seed denomination set - using configured denominations")
	}

	return &DatabaseComponents{
		DB:                      db,
		DenominationSets:        sets,
		LoggingService:          service.NewLoggingService(logsRepo),
		DenominationSetsBreaker: setsCB,
		LogsBreaker:             logsCB,
	}
}

func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	})
}

// Close disconnects from MongoDB. It is safe on nil components.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
