// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockDenominationSetsRepositoryInterface struct {
	mock.Mock
}

func (m *MockDenominationSetsRepositoryInterface) GetActive(ctx context.Context) (*model.DenominationSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DenominationSet), args.Error(1)
}

func (m *MockDenominationSetsRepositoryInterface) Create(ctx context.Context, denominations []int, createdBy string) (*model.DenominationSet, error) {
	args := m.Called(ctx, denominations, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DenominationSet), args.Error(1)
}

func (m *MockDenominationSetsRepositoryInterface) Update(ctx context.Context, id string, denominations []int, updatedBy string) (*model.DenominationSet, error) {
	args := m.Called(ctx, id, denominations, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DenominationSet), args.Error(1)
}

func (m *MockDenominationSetsRepositoryInterface) List(ctx context.Context, limit int) ([]model.DenominationSet, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DenominationSet), args.Error(1)
}
