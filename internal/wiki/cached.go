package wiki

import (
	"context"

	"github.com/aleksandradimitrov/wikipedia-task/internal/cache"
	"github.com/aleksandradimitrov/wikipedia-task/internal/metrics"
)

// CachedSource memoizes successful lookups of another source. Failures are
// never cached, so a later run may retry them.
type CachedSource struct {
	next    LinkSource
	lru     *cache.LRU[string, []string]
	metrics *metrics.Metrics
}

func NewCachedSource(next LinkSource, size int, m *metrics.Metrics) (*CachedSource, error) {
	lru, err := cache.New[string, []string](size)
	if err != nil {
		return nil, err
	}
	return &CachedSource{next: next, lru: lru, metrics: m}, nil
}

func (c *CachedSource) Links(ctx context.Context, id string) ([]string, error) {
	if links, ok := c.lru.Get(id); ok {
		c.metrics.ObserveCacheHit()
		return append([]string(nil), links...), nil
	}

	links, err := c.next.Links(ctx, id)
	if err != nil {
		return nil, err
	}
	c.lru.Put(id, append([]string(nil), links...))
	return links, nil
}
