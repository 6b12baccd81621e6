package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// DefaultTTL is how long a resolved rate stays fresh.
const DefaultTTL = time.Hour

type rateEntry struct {
	rate     decimal.Decimal
	storedAt time.Time
}

// MemoryRateCache is a process-local rate cache with lazy expiry.
// Expired entries are left in place until overwritten or cleared.
type MemoryRateCache struct {
	entries map[string]rateEntry
	mutex   sync.RWMutex
	ttl     time.Duration
	clock   utils.Clock
	log     *slog.Logger
}

var _ portsrepo.RateCache = (*MemoryRateCache)(nil)

// NewMemoryRateCache builds a cache. A nil clock uses the system clock and a
// non-positive ttl falls back to DefaultTTL.
func NewMemoryRateCache(ttl time.Duration, clock utils.Clock, log *slog.Logger) *MemoryRateCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = utils.SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &MemoryRateCache{
		entries: make(map[string]rateEntry),
		ttl:     ttl,
		clock:   clock,
		log:     log,
	}
}

// Get returns the cached rate while it is strictly younger than the TTL.
func (c *MemoryRateCache) Get(ctx context.Context, key string) (decimal.Decimal, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, found := c.entries[key]
	if !found {
		c.log.DebugContext(ctx, "Rate cache miss", slog.String("key", key))
		return decimal.Zero, false
	}
	if c.clock.Now().Sub(entry.storedAt) >= c.ttl {
		c.log.DebugContext(ctx, "Rate cache entry expired", slog.String("key", key))
		return decimal.Zero, false
	}
	c.log.DebugContext(ctx, "Rate cache hit", slog.String("key", key))
	return entry.rate, true
}

// Set stores rate under key, replacing any previous value.
func (c *MemoryRateCache) Set(ctx context.Context, key string, rate decimal.Decimal) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = rateEntry{rate: rate, storedAt: c.clock.Now()}
	c.log.DebugContext(ctx, "Rate cache set", slog.String("key", key))
}

// Clear drops every entry.
func (c *MemoryRateCache) Clear(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]rateEntry)
	c.log.InfoContext(ctx, "Rate cache cleared", slog.Int("entries", n))
}

// Len counts stored entries, expired ones included.
func (c *MemoryRateCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
