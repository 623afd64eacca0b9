package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/combination-service/internal/combination"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/repository"
	"github.com/rs/zerolog/log"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrEmptyDenominations is returned when a denomination set has no values.
	ErrEmptyDenominations = errors.New("denominations must not be empty")
)

const seedCreatedBy = "system"

// DenominationApplier receives the denominations of the active set.
type DenominationApplier interface {
	SetDenominations(denominations []int) error
}

// DenominationSetsService manages the stored denomination sets.
type DenominationSetsService interface {
	GetActive(ctx context.Context) (*model.DenominationSet, error)
	// Create stores a new active set and applies it.
	Create(ctx context.Context, denominations []int, createdBy string) (*model.DenominationSet, error)
	Update(ctx context.Context, id string, denominations []int, updatedBy string) (*model.DenominationSet, error)
	List(ctx context.Context, limit int) ([]model.DenominationSet, error)
	// Seed stores defaults when no set is active, otherwise applies the active set.
	Seed(ctx context.Context, defaults []int) (*model.DenominationSet, error)
}

// DenominationSetsServiceImpl implements DenominationSetsService.
type DenominationSetsServiceImpl struct {
	repo    repository.DenominationSetsRepositoryInterface
	applier DenominationApplier
}

// NewDenominationSetsService creates a denomination sets service.
// repo may be nil when persistence is disabled; applier may be nil.
func NewDenominationSetsService(repo repository.DenominationSetsRepositoryInterface, applier DenominationApplier) DenominationSetsService {
	return &DenominationSetsServiceImpl{
		repo:    repo,
		applier: applier,
	}
}

func (s *DenominationSetsServiceImpl) GetActive(ctx context.Context) (*model.DenominationSet, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.GetActive(ctx)
}

func (s *DenominationSetsServiceImpl) Create(ctx context.Context, denominations []int, createdBy string) (*model.DenominationSet, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := validateSet(denominations); err != nil {
		return nil, err
	}

	set, err := s.repo.Create(ctx, denominations, createdBy)
	if err != nil {
		return nil, err
	}
	return set, s.apply(set)
}

func (s *DenominationSetsServiceImpl) Update(ctx context.Context, id string, denominations []int, updatedBy string) (*model.DenominationSet, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := validateSet(denominations); err != nil {
		return nil, err
	}

	set, err := s.repo.Update(ctx, id, denominations, updatedBy)
	if err != nil {
		return nil, err
	}
	return set, s.apply(set)
}

func (s *DenominationSetsServiceImpl) List(ctx context.Context, limit int) ([]model.DenominationSet, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}

func (s *DenominationSetsServiceImpl) Seed(ctx context.Context, defaults []int) (*model.DenominationSet, error) {
	active, err := s.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		log.Info().
			Ints("denominations", active.Denominations).
			Int("version", active.Version).
			Msg("Using stored denomination set")
		return active, s.apply(active)
	}

	log.Info().Ints("denominations", defaults).Msg("Seeding default denomination set")
	return s.Create(ctx, defaults, seedCreatedBy)
}

// apply pushes an active set to the applier.
func (s *DenominationSetsServiceImpl) apply(set *model.DenominationSet) error {
	if s.applier == nil || set == nil || !set.Active {
		return nil
	}
	if err := s.applier.SetDenominations(set.Denominations); err != nil {
		return fmt.Errorf("apply denomination set %s: %w", set.ID, err)
	}
	return nil
}

func validateSet(denominations []int) error {
	if len(denominations) == 0 {
		return ErrEmptyDenominations
	}
	return combination.Validate(denominations)
}
