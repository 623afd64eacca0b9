//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/combination"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/mocks"
	"github.com/guttosm/combination-service/internal/service/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewEnumeratorService(t *testing.T) {
	tests := []struct {
		name     string
		options  []Option
		validate func(*testing.T, *EnumeratorService)
	}{
		{
			name: "uses compiled-in denominations when no options",
			validate: func(t *testing.T, svc *EnumeratorService) {
				assert.Equal(t, config.DefaultDenominations, svc.Denominations())
				assert.Nil(t, svc.cache)
			},
		},
		{
			name:    "keeps list order of custom denominations",
			options: []Option{WithDenominations([]int{5, 1, 2})},
			validate: func(t *testing.T, svc *EnumeratorService) {
				assert.Equal(t, []int{5, 1, 2}, svc.Denominations())
			},
		},
		{
			name:    "ignores empty denominations",
			options: []Option{WithDenominations(nil)},
			validate: func(t *testing.T, svc *EnumeratorService) {
				assert.Equal(t, []int{2}, svc.Denominations())
			},
		},
		{
			name:    "enables cache with option",
			options: []Option{WithCache(100, time.Minute, 4)},
			validate: func(t *testing.T, svc *EnumeratorService) {
				assert.NotNil(t, svc.cache)
				svc.Stop()
			},
		},
		{
			name:    "zero capacity leaves cache disabled",
			options: []Option{WithCache(0, time.Minute, 4)},
			validate: func(t *testing.T, svc *EnumeratorService) {
				assert.Nil(t, svc.cache)
			},
		},
		{
			name:    "sets limits",
			options: []Option{WithLimits(10, 500)},
			validate: func(t *testing.T, svc *EnumeratorService) {
				assert.Equal(t, 10, svc.maxCombinations)
				assert.Equal(t, 500, svc.maxTarget)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEnumeratorService(tt.options...)
			tt.validate(t, svc)
		})
	}
}

func TestEnumeratorService_Enumerate(t *testing.T) {
	svc := NewEnumeratorService(WithDenominations([]int{1, 2}))
	ctx := context.Background()

	tests := []struct {
		name          string
		denominations []int
		target        int
		limit         int
		expected      []model.Combination
		truncated     bool
	}{
		{name: "uses defaults for empty request", target: 3, expected: []model.Combination{{1, 1, 1}, {1, 2}}},
		{name: "no combination", denominations: []int{2}, target: 3, expected: []model.Combination{}},
		{name: "single combination", denominations: []int{2}, target: 4, expected: []model.Combination{{2, 2}}},
		{name: "zero target", denominations: []int{3}, target: 0, expected: []model.Combination{{}}},
		{name: "negative target", denominations: []int{3}, target: -1, expected: []model.Combination{}},
		{
			name:          "limit truncates",
			denominations: []int{1, 2, 3},
			target:        4,
			limit:         2,
			expected:      []model.Combination{{1, 1, 1, 1}, {1, 1, 2}},
			truncated:     true,
		},
		{
			name:          "limit equal to total is not truncated",
			denominations: []int{1, 2, 3},
			target:        4,
			limit:         4,
			expected:      []model.Combination{{1, 1, 1, 1}, {1, 1, 2}, {1, 3}, {2, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Enumerate(ctx, tt.denominations, tt.target, tt.limit)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.expected, result.Combinations); diff != "" {
				t.Errorf("combinations mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.expected), result.Count)
			assert.Equal(t, tt.target, result.Target)
			assert.Equal(t, tt.truncated, result.Truncated)
		})
	}
}

func TestEnumeratorService_Enumerate_Rejects(t *testing.T) {
	svc := NewEnumeratorService(WithLimits(0, 100))
	ctx := context.Background()

	_, err := svc.Enumerate(ctx, []int{1, 0}, 3, 0)
	assert.ErrorIs(t, err, combination.ErrNonPositiveDenomination)

	_, err = svc.Enumerate(ctx, []int{1}, 101, 0)
	assert.ErrorIs(t, err, ErrTargetTooLarge)

	_, err = svc.Enumerate(ctx, []int{1}, 100, 0)
	assert.NoError(t, err)
}

func TestEnumeratorService_Enumerate_MaxCombinations(t *testing.T) {
	svc := NewEnumeratorService(WithLimits(3, 0))
	ctx := context.Background()

	t.Run("applies cap when request has no limit", func(t *testing.T) {
		result, err := svc.Enumerate(ctx, []int{1, 2, 5}, 12, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Count)
		assert.True(t, result.Truncated)
	})

	t.Run("cap wins over a larger request limit", func(t *testing.T) {
		result, err := svc.Enumerate(ctx, []int{1, 2, 5}, 12, 50)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Count)
	})

	t.Run("smaller request limit wins over the cap", func(t *testing.T) {
		result, err := svc.Enumerate(ctx, []int{1, 2, 5}, 12, 1)
		require.NoError(t, err)
		assert.Equal(t, []model.Combination{{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}}, result.Combinations)
	})
}

func TestEnumeratorService_Enumerate_Canceled(t *testing.T) {
	svc := NewEnumeratorService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Enumerate(ctx, []int{1}, 5, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnumeratorService_Enumerate_MaxElements(t *testing.T) {
	tests := []struct {
		name        string
		maxElements int
		target      int
		expected    []model.Combination
		truncated   bool
	}{
		{
			name:        "budget stops before the combination that does not fit",
			maxElements: 10,
			target:      6,
			expected:    []model.Combination{{1, 1, 1, 1, 1, 1}},
			truncated:   true,
		},
		{
			name:        "exact budget keeps everything",
			maxElements: 5,
			target:      3,
			expected:    []model.Combination{{1, 1, 1}, {1, 2}},
		},
		{
			name:        "zero disables the budget",
			maxElements: 0,
			target:      4,
			expected:    []model.Combination{{1, 1, 1, 1}, {1, 1, 2}, {2, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEnumeratorService(WithMaxElements(tt.maxElements))

			result, err := svc.Enumerate(context.Background(), []int{1, 2}, tt.target, 0)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Combinations)
			assert.Equal(t, len(tt.expected), result.Count)
			assert.Equal(t, tt.truncated, result.Truncated)
		})
	}
}

func TestEnumeratorService_Stream_IgnoresMaxElements(t *testing.T) {
	svc := NewEnumeratorService(WithMaxElements(1))

	count := 0
	summary, err := svc.Stream(context.Background(), []int{1, 2}, 6, 0, combination.SinkFunc(func([]int) error {
		count++
		return nil
	}))

	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.False(t, summary.Truncated)
}

func evenDenominations(upTo int) []int {
	var out []int
	for d := 2; d <= upTo; d += 2 {
		out = append(out, d)
	}
	return out
}

func TestEnumeratorService_Stream_DeadlineWithoutResults(t *testing.T) {
	svc := NewEnumeratorService(WithLimits(10000, 1000))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	emitted := 0
	start := time.Now()
	summary, err := svc.Stream(ctx, evenDenominations(40), 301, 0, combination.SinkFunc(func([]int) error {
		emitted++
		return nil
	}))

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Zero(t, summary.Count)
	assert.Zero(t, emitted)
}

func TestEnumeratorService_Enumerate_CanceledWithoutResults(t *testing.T) {
	svc := NewEnumeratorService()
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	_, err := svc.Enumerate(ctx, evenDenominations(40), 301, 0)

	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEnumeratorService_Enumerate_DoesNotAliasRequest(t *testing.T) {
	svc := NewEnumeratorService()
	request := []int{1, 2}

	result, err := svc.Enumerate(context.Background(), request, 2, 0)
	require.NoError(t, err)
	request[0] = 9

	assert.Equal(t, []int{1, 2}, result.Denominations)
}

func TestEnumeratorService_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("returns cached result without searching", func(t *testing.T) {
		mockCache := new(mocks.MockCache)
		cached := model.Empty([]int{1, 2}, 3)
		cached.Add([]int{9})
		mockCache.On("Get", cache.Key([]int{1, 2}, 3, 0)).Return(cached, true)

		svc := NewEnumeratorService(WithCacheInterface(mockCache))
		result, err := svc.Enumerate(ctx, []int{1, 2}, 3, 0)

		require.NoError(t, err)
		assert.Equal(t, cached, result)
		mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("stores result on miss", func(t *testing.T) {
		mockCache := new(mocks.MockCache)
		key := cache.Key([]int{2}, 4, 10)
		mockCache.On("Get", key).Return(model.EnumerationResult{}, false)
		mockCache.On("Set", key, mock.MatchedBy(func(r model.EnumerationResult) bool {
			return r.Count == 1 && r.Target == 4
		})).Return()

		svc := NewEnumeratorService(WithCacheInterface(mockCache), WithLimits(10, 0))
		_, err := svc.Enumerate(ctx, []int{2}, 4, 0)

		require.NoError(t, err)
		mockCache.AssertExpectations(t)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		mockCache := new(mocks.MockCache)
		mockCache.On("Get", mock.Anything).Return(model.EnumerationResult{}, false)

		svc := NewEnumeratorService(WithCacheInterface(mockCache))
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := svc.Enumerate(canceled, []int{1}, 3, 0)

		assert.Error(t, err)
		mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
	})

	t.Run("real cache serves repeated requests", func(t *testing.T) {
		svc := NewEnumeratorService(WithCache(10, time.Minute, 2))
		defer svc.Stop()

		first, err := svc.Enumerate(ctx, []int{1, 2}, 5, 0)
		require.NoError(t, err)
		second, err := svc.Enumerate(ctx, []int{1, 2}, 5, 0)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		sc, ok := svc.cache.(cache.CacheWithMetrics)
		require.True(t, ok)
		assert.Equal(t, int64(1), sc.Metrics().Hits)
	})
}

func TestEnumeratorService_InvalidateCache(t *testing.T) {
	mockCache := new(mocks.MockCache)
	mockCache.On("Clear").Return()

	svc := NewEnumeratorService(WithCacheInterface(mockCache))
	svc.InvalidateCache()

	mockCache.AssertCalled(t, "Clear")

	assert.NotPanics(t, func() { NewEnumeratorService().InvalidateCache() })
}

func TestEnumeratorService_SetDenominations(t *testing.T) {
	mockCache := new(mocks.MockCache)
	mockCache.On("Clear").Return()
	svc := NewEnumeratorService(WithCacheInterface(mockCache))

	require.NoError(t, svc.SetDenominations([]int{3, 1}))
	assert.Equal(t, []int{3, 1}, svc.Denominations())
	mockCache.AssertNumberOfCalls(t, "Clear", 1)

	assert.ErrorIs(t, svc.SetDenominations(nil), combination.ErrNonPositiveDenomination)
	assert.ErrorIs(t, svc.SetDenominations([]int{1, -1}), combination.ErrNonPositiveDenomination)
	assert.Equal(t, []int{3, 1}, svc.Denominations())
	mockCache.AssertNumberOfCalls(t, "Clear", 1)

	result, err := svc.Enumerate(context.Background(), nil, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, []model.Combination{{3, 1}, {1, 1, 1, 1}}, result.Combinations)
}

func TestEnumeratorService_Stream(t *testing.T) {
	svc := NewEnumeratorService(WithLimits(2, 0))
	ctx := context.Background()

	t.Run("streams in discovery order up to the limit", func(t *testing.T) {
		var got [][]int
		summary, err := svc.Stream(ctx, []int{1, 2, 3}, 4, 0, combination.SinkFunc(func(c []int) error {
			got = append(got, c)
			return nil
		}))

		require.NoError(t, err)
		assert.Equal(t, [][]int{{1, 1, 1, 1}, {1, 1, 2}}, got)
		assert.Equal(t, model.StreamSummary{Count: 2, Truncated: true}, summary)
	})

	t.Run("sink errors are returned", func(t *testing.T) {
		boom := errors.New("write failed")
		summary, err := svc.Stream(ctx, []int{1}, 3, 0, combination.SinkFunc(func([]int) error {
			return boom
		}))

		assert.ErrorIs(t, err, boom)
		assert.Zero(t, summary.Count)
	})

	t.Run("sink can stop early", func(t *testing.T) {
		summary, err := svc.Stream(ctx, []int{1, 2}, 4, 0, combination.SinkFunc(func([]int) error {
			return combination.ErrStop
		}))

		require.NoError(t, err)
		assert.Zero(t, summary.Count)
		assert.False(t, summary.Truncated)
	})

	t.Run("rejects invalid denominations before emitting", func(t *testing.T) {
		called := false
		_, err := svc.Stream(ctx, []int{-5}, 5, 0, combination.SinkFunc(func([]int) error {
			called = true
			return nil
		}))

		assert.ErrorIs(t, err, combination.ErrNonPositiveDenomination)
		assert.False(t, called)
	})
}

var _ Enumerator = (*EnumeratorService)(nil)
