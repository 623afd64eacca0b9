package repository

import (
	"context"
	"errors"

	"github.com/guttosm/combination-service/internal/circuitbreaker"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/rs/zerolog/log"
)

// IsBreakerFailure reports whether err should count against a repository breaker.
// Lookups that find nothing and rejected input are not infrastructure failures.
func IsBreakerFailure(err error) bool {
	return !errors.Is(err, context.Canceled) &&
		!errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrInvalidID)
}

// DenominationSetsRepositoryWithCircuitBreaker guards a denomination sets repository.
type DenominationSetsRepositoryWithCircuitBreaker struct {
	repo           DenominationSetsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewDenominationSetsRepositoryWithCircuitBreaker wraps repo with cb.
func NewDenominationSetsRepositoryWithCircuitBreaker(repo DenominationSetsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *DenominationSetsRepositoryWithCircuitBreaker {
	return &DenominationSetsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetActive returns nil without error while the circuit is open, so callers
// fall back to the configured denominations.
func (r *DenominationSetsRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*model.DenominationSet, error) {
	set, err := circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.DenominationSet, error) {
		return r.repo.GetActive(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		log.Debug().Str("circuit_breaker", r.circuitBreaker.Name()).Msg("Active denomination set lookup skipped")
		return nil, nil
	}
	return set, err
}

func (r *DenominationSetsRepositoryWithCircuitBreaker) Create(ctx context.Context, denominations []int, createdBy string) (*model.DenominationSet, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.DenominationSet, error) {
		return r.repo.Create(ctx, denominations, createdBy)
	})
}

func (r *DenominationSetsRepositoryWithCircuitBreaker) Update(ctx context.Context, id string, denominations []int, updatedBy string) (*model.DenominationSet, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (*model.DenominationSet, error) {
		return r.repo.Update(ctx, id, denominations, updatedBy)
	})
}

func (r *DenominationSetsRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]model.DenominationSet, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]model.DenominationSet, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *DenominationSetsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker guards a logs repository.
// Writes are dropped silently while the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return circuitbreaker.Do(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
