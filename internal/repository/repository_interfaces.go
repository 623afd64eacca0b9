package repository

import (
	"context"

	"github.com/guttosm/combination-service/internal/domain/model"
)

// DenominationSetsRepositoryInterface defines denomination set storage.
type DenominationSetsRepositoryInterface interface {
	GetActive(ctx context.Context) (*model.DenominationSet, error)
	Create(ctx context.Context, denominations []int, createdBy string) (*model.DenominationSet, error)
	Update(ctx context.Context, id string, denominations []int, updatedBy string) (*model.DenominationSet, error)
	List(ctx context.Context, limit int) ([]model.DenominationSet, error)
}

// LogsRepositoryInterface defines log storage.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
