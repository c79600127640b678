package cache

import (
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"ledger-core/pkg/db"
)

const numShards = 16

// ShardedRuleCache holds trading rules keyed by user|category|subcategory.
// The evaluator hits the active rule on every keystroke of the journal form,
// so lookups are served from memory and refreshed on write.
type ShardedRuleCache struct {
	shards [numShards]*ruleShard
}

type ruleShard struct {
	mu    sync.RWMutex
	items map[string]ruleEntry
}

type ruleEntry struct {
	rule      *db.TradingRule // nil means "known absent"
	updatedAt time.Time
}

// Key builds the cache key for one rule slot.
func Key(userID, category, subcategory string) string {
	return userID + "|" + category + "|" + subcategory
}

// NewShardedRuleCache creates an empty cache.
func NewShardedRuleCache() *ShardedRuleCache {
	c := &ShardedRuleCache{}
	for i := 0; i < numShards; i++ {
		c.shards[i] = &ruleShard{
			items: make(map[string]ruleEntry),
		}
	}
	return c
}

func (c *ShardedRuleCache) getShard(key string) *ruleShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[h.Sum32()%numShards]
}

// Set stores a rule (or its absence, as nil) for a key.
func (c *ShardedRuleCache) Set(key string, rule *db.TradingRule) {
	shard := c.getShard(key)
	shard.mu.Lock()
	shard.items[key] = ruleEntry{
		rule:      rule,
		updatedAt: time.Now(),
	}
	shard.mu.Unlock()
}

// Get retrieves a rule no older than maxAge. The second return reports a
// cache hit; a hit can still carry a nil rule for an unconfigured slot.
func (c *ShardedRuleCache) Get(key string, maxAge time.Duration) (*db.TradingRule, bool) {
	shard := c.getShard(key)
	shard.mu.RLock()
	entry, ok := shard.items[key]
	shard.mu.RUnlock()
	if !ok || time.Since(entry.updatedAt) > maxAge {
		return nil, false
	}
	return entry.rule, true
}

// Delete removes one key.
func (c *ShardedRuleCache) Delete(key string) {
	shard := c.getShard(key)
	shard.mu.Lock()
	delete(shard.items, key)
	shard.mu.Unlock()
}

// DeleteUser drops every cached rule for one user. Used after rule writes
// where only the row id is known.
func (c *ShardedRuleCache) DeleteUser(userID string) int {
	prefix := userID + "|"
	removed := 0
	for _, shard := range c.shards {
		shard.mu.Lock()
		for key := range shard.items {
			if strings.HasPrefix(key, prefix) {
				delete(shard.items, key)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	return removed
}

// Len returns total items across all shards.
func (c *ShardedRuleCache) Len() int {
	total := 0
	for _, shard := range c.shards {
		shard.mu.RLock()
		total += len(shard.items)
		shard.mu.RUnlock()
	}
	return total
}

// Cleanup removes entries older than maxAge.
func (c *ShardedRuleCache) Cleanup(maxAge time.Duration) int {
	removed := 0
	cutoff := time.Now().Add(-maxAge)

	for _, shard := range c.shards {
		shard.mu.Lock()
		for key, entry := range shard.items {
			if entry.updatedAt.Before(cutoff) {
				delete(shard.items, key)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	return removed
}
