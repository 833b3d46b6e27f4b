package cache

import (
	"fmt"
	"slices"
	"time"

	"bonusrates/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateSheetCache keeps whole rate sheets keyed by store generation.
type RistrettoRateSheetCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewRateSheetCache(maxItems int64, ttl time.Duration) (*RistrettoRateSheetCache, error) {
	if maxItems <= 0 {
		maxItems = 16
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
		// cost is counted in sheets, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate sheet cache failed: %w", err)
	}
	return &RistrettoRateSheetCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoRateSheetCache) Get(generation uint64) (domain.RateSheet, bool) {
	if v, ok := c.cache.Get(generation); ok {
		sheet, ok := v.(domain.RateSheet)
		return slices.Clone(sheet), ok
	}
	return nil, false
}

func (c *RistrettoRateSheetCache) Set(generation uint64, sheet domain.RateSheet) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(generation, slices.Clone(sheet), 1, c.ttl)
		return
	}
	c.cache.Set(generation, slices.Clone(sheet), 1)
}

func (c *RistrettoRateSheetCache) Del(generation uint64) {
	c.cache.Del(generation)
}

func (c *RistrettoRateSheetCache) Close() { c.cache.Close() }
