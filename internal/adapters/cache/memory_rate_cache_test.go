package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCache() (*MemoryRateCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewMemoryRateCache(time.Hour, clock, nil), clock
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache()
	_, ok := c.Get(context.Background(), domain.RateCacheKey("USD", "ARS"))
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache()
	c.Set(ctx, domain.RateCacheKey("USD", "ARS"), decimal.RequireFromString("900"))

	clock.Advance(59 * time.Minute)
	rate, ok := c.Get(ctx, domain.RateCacheKey("USD", "ARS"))
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("900")))
}

func TestExpiryIsStrict(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache()
	c.Set(ctx, "k", decimal.NewFromInt(2))

	clock.Advance(time.Hour - time.Nanosecond)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok, "entry younger than ttl must hit")

	clock.Advance(time.Nanosecond)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok, "entry exactly ttl old must miss")
	assert.Equal(t, 1, c.Len(), "expiry is lazy")
}

func TestSetOverwritesAndRestamps(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache()
	c.Set(ctx, "k", decimal.NewFromInt(1))
	clock.Advance(50 * time.Minute)
	c.Set(ctx, "k", decimal.NewFromInt(3))
	clock.Advance(50 * time.Minute)

	rate, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.NewFromInt(3)))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()
	c.Set(ctx, "a", decimal.NewFromInt(1))
	c.Set(ctx, "b", decimal.NewFromInt(2))
	require.Equal(t, 2, c.Len())

	c.Clear(ctx)
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
}

func TestDefaults(t *testing.T) {
	c := NewMemoryRateCache(0, nil, nil)
	assert.Equal(t, DefaultTTL, c.ttl)
	c.Set(context.Background(), "k", decimal.NewFromInt(1))
	_, ok := c.Get(context.Background(), "k")
	assert.True(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(ctx, "k", decimal.NewFromInt(int64(i)))
			c.Get(ctx, "k")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}
