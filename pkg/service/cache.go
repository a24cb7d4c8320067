package service

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/egandro/global-temperature-heatmap/pkg/dataset"
	"github.com/egandro/global-temperature-heatmap/pkg/fetcher"
	"github.com/egandro/global-temperature-heatmap/pkg/svg"
)

// snapshot is one fetched dataset together with the heat map built from it.
type snapshot struct {
	data      *dataset.Dataset
	heatmap   *svg.Heatmap
	fetchedAt time.Time
}

// heatmapCache keeps the last snapshot for ttl. A ttl <= 0 disables caching.
// Failed fetches are never cached and there is no stale fallback.
type heatmapCache struct {
	source  fetcher.Source
	opts    svg.Options
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *Metrics

	mu      sync.Mutex
	current *snapshot
}

func newHeatmapCache(src fetcher.Source, opts svg.Options, ttl time.Duration, clock clockwork.Clock, metrics *Metrics) *heatmapCache {
	return &heatmapCache{
		source:  src,
		opts:    opts,
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

// get returns a fresh snapshot, fetching when the cached one expired.
// Concurrent callers wait for a single fetch.
func (c *heatmapCache) get(ctx context.Context) (*snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.ttl > 0 && c.clock.Since(c.current.fetchedAt) < c.ttl {
		c.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return c.current, nil
	}
	c.metrics.CacheLookups.WithLabelValues("miss").Inc()

	start := c.clock.Now()
	ds, err := c.source.Fetch(ctx)
	c.metrics.DatasetFetchDuration.Observe(c.clock.Since(start).Seconds())
	if err != nil {
		c.metrics.DatasetFetches.WithLabelValues("error").Inc()
		return nil, err
	}

	h, err := svg.New(ds, c.opts)
	if err != nil {
		c.metrics.DatasetFetches.WithLabelValues("error").Inc()
		return nil, err
	}
	c.metrics.DatasetFetches.WithLabelValues("success").Inc()
	c.metrics.DatasetRecords.Set(float64(len(ds.MonthlyVariance)))

	c.current = &snapshot{data: ds, heatmap: h, fetchedAt: c.clock.Now()}
	return c.current, nil
}

// invalidate drops the cached snapshot.
func (c *heatmapCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}
