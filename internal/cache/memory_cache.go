package cache

import (
	"context"
	"sync"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
)

// MemoryCache is the in-process L1 cache for price histories.
// Entries carry their own expiry, normally the next market close.
type MemoryCache struct {
	histories map[string]historyEntry
	mu        sync.RWMutex
	now       func() time.Time
}

type historyEntry struct {
	data      []models.PricePoint
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		histories: make(map[string]historyEntry),
		now:       time.Now,
	}
}

// HistoryKey generates the cache key for a symbol and window
func HistoryKey(symbol string, window models.Window) string {
	return "history:" + symbol + ":" + string(window)
}

// GetHistory returns a cached series if present and not expired
func (c *MemoryCache) GetHistory(_ context.Context, symbol string, window models.Window) ([]models.PricePoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.histories[HistoryKey(symbol, window)]
	if !exists || !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

// SetHistory caches a series until expiresAt
func (c *MemoryCache) SetHistory(_ context.Context, symbol string, window models.Window, data []models.PricePoint, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.histories[HistoryKey(symbol, window)] = historyEntry{
		data:      data,
		expiresAt: expiresAt,
	}
}

// Evict drops expired entries and returns how many were removed
func (c *MemoryCache) Evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.histories {
		if !now.Before(entry.expiresAt) {
			delete(c.histories, key)
			removed++
		}
	}
	return removed
}
