package cache

import (
	"hash/fnv"
	"time"

	"github.com/guttosm/combination-service/internal/domain/model"
)

const defaultShards = 16

// ShardedCache distributes entries across independently locked LRU shards.
type ShardedCache struct {
	shards    []*lruCache
	numShards int
	shardMask uint32
}

// NewShardedCache creates a sharded cache with the given total capacity and TTL.
// numShards is rounded up to a power of two; non-positive values use 16.
func NewShardedCache(capacity int, ttl time.Duration, numShards int) *ShardedCache {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*lruCache, n)
	for i := range shards {
		shards[i] = newLRUCache(perShard, ttl)
	}

	return &ShardedCache{
		shards:    shards,
		numShards: n,
		shardMask: uint32(n - 1),
	}
}

func (sc *ShardedCache) shardFor(key string) *lruCache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return sc.shards[h.Sum32()&sc.shardMask]
}

// Get retrieves a value from the owning shard.
func (sc *ShardedCache) Get(key string) (model.EnumerationResult, bool) {
	return sc.shardFor(key).Get(key)
}

// Set stores a value in the owning shard.
func (sc *ShardedCache) Set(key string, value model.EnumerationResult) {
	sc.shardFor(key).Set(key, value)
}

// Invalidate removes a key from the owning shard.
func (sc *ShardedCache) Invalidate(key string) {
	sc.shardFor(key).Invalidate(key)
}

// Clear removes all entries from all shards.
func (sc *ShardedCache) Clear() {
	for _, shard := range sc.shards {
		shard.Clear()
	}
}

// Stop shuts down the cleanup goroutine of every shard.
func (sc *ShardedCache) Stop() {
	for _, shard := range sc.shards {
		shard.Stop()
	}
}

// Metrics returns metrics summed over all shards.
func (sc *ShardedCache) Metrics() Metrics {
	var total Metrics
	for _, shard := range sc.shards {
		m := shard.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}
