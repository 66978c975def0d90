package application

import (
	"sync"
	"time"

	"pairscan-service/internal/domain"
)

// SnapshotCache keeps the latest good snapshot per category.
type SnapshotCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[domain.Category]domain.Snapshot
}

func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{ttl: ttl, entries: map[domain.Category]domain.Snapshot{}}
}

// Fresh returns the cached snapshot when it is younger than the TTL.
func (c *SnapshotCache) Fresh(category domain.Category, now time.Time) (domain.Snapshot, bool) {
	s, ok := c.Last(category)
	if !ok || now.Sub(s.FetchedAt) >= c.ttl {
		return domain.Snapshot{}, false
	}
	return s, true
}

// Last returns the cached snapshot regardless of age.
func (c *SnapshotCache) Last(category domain.Category) (domain.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[category]
	return s, ok
}

func (c *SnapshotCache) Put(s domain.Snapshot) {
	c.mu.Lock()
	c.entries[s.Category] = s
	c.mu.Unlock()
}
