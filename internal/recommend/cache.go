package recommend

import (
	"sync"
	"time"

	"github.com/Veraticus/harmony/internal/model"
)

// cacheEntry is one student's computed recommendations.
type cacheEntry struct {
	expiry          time.Time
	recommendations []model.Recommendation
}

// resultCache holds recommendations per student until they expire.
type resultCache struct {
	entries map[string]cacheEntry
	now     func() time.Time
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
	once    sync.Once
}

func newResultCache(ttl time.Duration, now func() time.Time, sweep time.Duration) *resultCache {
	c := &resultCache{
		entries: make(map[string]cacheEntry),
		now:     now,
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}
	if sweep > 0 {
		go c.cleanup(sweep)
	}
	return c
}

func (c *resultCache) get(studentID string) ([]model.Recommendation, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[studentID]
	if !ok || !c.now().Before(entry.expiry) {
		return nil, false
	}
	return entry.recommendations, true
}

func (c *resultCache) set(studentID string, recs []model.Recommendation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[studentID] = cacheEntry{recommendations: recs, expiry: c.now().Add(c.ttl)}
}

func (c *resultCache) delete(studentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, studentID)
}

// cleanup periodically removes expired entries.
func (c *resultCache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := c.now()
			for id, entry := range c.entries {
				if !now.Before(entry.expiry) {
					delete(c.entries, id)
				}
			}
			c.mu.Unlock()
		}
	}
}

func (c *resultCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *resultCache) close() {
	c.once.Do(func() { close(c.stopCh) })
}
