// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/combination-service/internal/combination"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockEnumerator struct {
	mock.Mock
}

func (m *MockEnumerator) Enumerate(ctx context.Context, denominations []int, target, limit int) (model.EnumerationResult, error) {
	args := m.Called(ctx, denominations, target, limit)
	return args.Get(0).(model.EnumerationResult), args.Error(1)
}

// Stream replays the combinations passed as the third return value, if any, into sink.
func (m *MockEnumerator) Stream(ctx context.Context, denominations []int, target, limit int, sink combination.Sink) (model.StreamSummary, error) {
	args := m.Called(ctx, denominations, target, limit, sink)
	if len(args) > 2 {
		if combos, ok := args.Get(2).([][]int); ok {
			for _, c := range combos {
				if err := sink.Emit(c); err != nil {
					return args.Get(0).(model.StreamSummary), err
				}
			}
		}
	}
	return args.Get(0).(model.StreamSummary), args.Error(1)
}

func (m *MockEnumerator) Denominations() []int {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]int)
}

func (m *MockEnumerator) SetDenominations(denominations []int) error {
	args := m.Called(denominations)
	return args.Error(0)
}

func (m *MockEnumerator) InvalidateCache() {
	m.Called()
}
