// Package service contains the business logic for the combination service.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/combination-service/config"
	"github.com/guttosm/combination-service/internal/combination"
	"github.com/guttosm/combination-service/internal/domain/model"
	"github.com/guttosm/combination-service/internal/metrics"
	"github.com/guttosm/combination-service/internal/service/cache"
)

// ErrTargetTooLarge is returned when a target exceeds the configured maximum.
var ErrTargetTooLarge = errors.New("target exceeds maximum")

// Enumerator defines the interface for combination enumeration.
type Enumerator interface {
	// Enumerate collects combinations in discovery order, up to the effective limit.
	Enumerate(ctx context.Context, denominations []int, target, limit int) (model.EnumerationResult, error)
	// Stream passes combinations to sink as they are found.
	Stream(ctx context.Context, denominations []int, target, limit int, sink combination.Sink) (model.StreamSummary, error)
	// Denominations returns the list used when a request carries none.
	Denominations() []int
	// SetDenominations replaces the default list and clears the cache.
	SetDenominations(denominations []int) error
	// InvalidateCache clears cached results.
	InvalidateCache()
}

// Option configures an EnumeratorService.
type Option func(*EnumeratorService)

// EnumeratorService implements Enumerator on top of the combination package.
type EnumeratorService struct {
	mu              sync.RWMutex
	denominations   []int
	maxCombinations int
	maxTarget       int
	maxElements     int
	cache           cache.Cache
}

// NewEnumeratorService creates a new EnumeratorService with the given options.
func NewEnumeratorService(opts ...Option) *EnumeratorService {
	s := &EnumeratorService{
		denominations: cloneInts(config.DefaultDenominations),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithDenominations sets the default denominations. Empty lists are ignored.
func WithDenominations(denominations []int) Option {
	return func(s *EnumeratorService) {
		if len(denominations) > 0 {
			s.denominations = cloneInts(denominations)
		}
	}
}

// WithLimits sets the per-request result cap and the largest accepted target.
// Zero disables either check.
func WithLimits(maxCombinations, maxTarget int) Option {
	return func(s *EnumeratorService) {
		s.maxCombinations = maxCombinations
		s.maxTarget = maxTarget
	}
}

// WithMaxElements caps the total number of values Enumerate buffers for one
// result. Reaching it truncates the result. Zero disables the cap.
func WithMaxElements(n int) Option {
	return func(s *EnumeratorService) {
		s.maxElements = n
	}
}

// WithCache enables a sharded result cache.
func WithCache(capacity int, ttl time.Duration, shards int) Option {
	return func(s *EnumeratorService) {
		if capacity > 0 {
			s.cache = cache.NewShardedCache(capacity, ttl, shards)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *EnumeratorService) {
		s.cache = c
	}
}

// Denominations returns a copy of the default denominations.
func (s *EnumeratorService) Denominations() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneInts(s.denominations)
}

// SetDenominations replaces the default denominations.
func (s *EnumeratorService) SetDenominations(denominations []int) error {
	if len(denominations) == 0 {
		return fmt.Errorf("%w: empty list", combination.ErrNonPositiveDenomination)
	}
	if err := combination.Validate(denominations); err != nil {
		return err
	}

	s.mu.Lock()
	s.denominations = cloneInts(denominations)
	s.mu.Unlock()

	s.InvalidateCache()
	return nil
}

// Enumerate collects every combination up to the effective limit.
func (s *EnumeratorService) Enumerate(ctx context.Context, denominations []int, target, limit int) (model.EnumerationResult, error) {
	start := time.Now()
	denominations, limit, err := s.prepare(denominations, target, limit)
	if err != nil {
		metrics.RecordEnumeration(time.Since(start), metrics.StatusRejected, 0)
		return model.EnumerationResult{}, err
	}

	key := cache.Key(denominations, target, limit)
	if s.cache != nil {
		if result, ok := s.cache.Get(key); ok {
			metrics.RecordEnumeration(time.Since(start), metrics.StatusCached, 0)
			return result, nil
		}
	}

	result := model.Empty(denominations, target)
	elements, overBudget := 0, false
	summary, err := s.run(ctx, denominations, target, limit, combination.SinkFunc(func(c []int) error {
		if s.maxElements > 0 && elements+len(c) > s.maxElements {
			overBudget = true
			return combination.ErrStop
		}
		elements += len(c)
		result.Add(c)
		return nil
	}))
	if err != nil {
		metrics.RecordEnumeration(time.Since(start), statusFor(err), summary.Count)
		return model.EnumerationResult{}, err
	}
	summary.Truncated = summary.Truncated || overBudget
	result.Truncated = summary.Truncated

	if s.cache != nil {
		s.cache.Set(key, result)
	}

	metrics.RecordEnumeration(time.Since(start), statusForSummary(summary), summary.Count)
	return result, nil
}

// Stream emits combinations to sink in discovery order without buffering them.
func (s *EnumeratorService) Stream(ctx context.Context, denominations []int, target, limit int, sink combination.Sink) (model.StreamSummary, error) {
	start := time.Now()
	denominations, limit, err := s.prepare(denominations, target, limit)
	if err != nil {
		metrics.RecordEnumeration(time.Since(start), metrics.StatusRejected, 0)
		return model.StreamSummary{}, err
	}

	summary, err := s.run(ctx, denominations, target, limit, sink)
	if err != nil {
		metrics.RecordEnumeration(time.Since(start), statusFor(err), summary.Count)
		return summary, err
	}

	metrics.RecordEnumeration(time.Since(start), statusForSummary(summary), summary.Count)
	return summary, nil
}

// InvalidateCache clears the result cache.
func (s *EnumeratorService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Stop releases the cache's background resources.
func (s *EnumeratorService) Stop() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

// prepare resolves defaults and limits, and validates the request.
func (s *EnumeratorService) prepare(denominations []int, target, limit int) ([]int, int, error) {
	if len(denominations) == 0 {
		denominations = s.Denominations()
	} else {
		denominations = cloneInts(denominations)
	}

	if err := combination.Validate(denominations); err != nil {
		return nil, 0, err
	}
	if s.maxTarget > 0 && target > s.maxTarget {
		return nil, 0, fmt.Errorf("%w: %d > %d", ErrTargetTooLarge, target, s.maxTarget)
	}

	if limit < 0 {
		limit = 0
	}
	if s.maxCombinations > 0 && (limit == 0 || limit > s.maxCombinations) {
		limit = s.maxCombinations
	}
	return denominations, limit, nil
}

// run drives the search, stopping at limit and on context cancellation.
// Truncated is only set when a combination beyond the limit exists.
func (s *EnumeratorService) run(ctx context.Context, denominations []int, target, limit int, sink combination.Sink) (model.StreamSummary, error) {
	var summary model.StreamSummary
	err := combination.EnumerateContext(ctx, denominations, target, combination.SinkFunc(func(c []int) error {
		if limit > 0 && summary.Count == limit {
			summary.Truncated = true
			return combination.ErrStop
		}
		if err := sink.Emit(c); err != nil {
			return err
		}
		summary.Count++
		return nil
	}))
	return summary, err
}

func statusFor(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.StatusCanceled
	case errors.Is(err, combination.ErrNonPositiveDenomination), errors.Is(err, ErrTargetTooLarge):
		return metrics.StatusRejected
	default:
		return metrics.StatusError
	}
}

func statusForSummary(summary model.StreamSummary) string {
	if summary.Truncated {
		return metrics.StatusTruncated
	}
	return metrics.StatusSuccess
}

func cloneInts(values []int) []int {
	if values == nil {
		return nil
	}
	out := make([]int, len(values))
	copy(out, values)
	return out
}
