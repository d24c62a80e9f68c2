package sheets

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/couchcryptid/quake-damage-dashboard/internal/domain"
	"github.com/couchcryptid/quake-damage-dashboard/internal/observability"
)

// CachedLoader wraps a TableLoader with a time-bounded in-memory cache keyed
// by sheet ID. Failed loads are never cached.
type CachedLoader struct {
	inner   domain.TableLoader
	sheetID string
	cache   *gocache.Cache
	metrics *observability.Metrics
}

// NewCachedLoader creates a cache decorator around a loader. Entries expire
// after ttl, which must be positive; go-cache treats zero as never expiring.
func NewCachedLoader(inner domain.TableLoader, sheetID string, ttl time.Duration, metrics *observability.Metrics) *CachedLoader {
	return &CachedLoader{
		inner:   inner,
		sheetID: sheetID,
		cache:   gocache.New(ttl, 2*ttl),
		metrics: metrics,
	}
}

func (c *CachedLoader) Load(ctx context.Context) (domain.Table, error) {
	if v, ok := c.cache.Get(c.sheetID); ok {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return v.(domain.Table), nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	table, err := c.inner.Load(ctx)
	if err != nil {
		return table, err
	}
	c.cache.Set(c.sheetID, table, gocache.DefaultExpiration)
	return table, nil
}
