// Package cache provides the enumeration result cache.
package cache

import (
	"strconv"
	"strings"

	"github.com/guttosm/combination-service/internal/domain/model"
)

// Cache defines the interface for cache operations.
type Cache interface {
	Get(key string) (model.EnumerationResult, bool)
	Set(key string, value model.EnumerationResult)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}

// Key builds the cache key for one enumeration request.
// Denomination order is part of the key since it drives discovery order.
func Key(denominations []int, target, limit int) string {
	var b strings.Builder
	b.Grow(len(denominations)*4 + 24)
	for i, d := range denominations {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(d))
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(target))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(limit))
	return b.String()
}
