// Package session holds the per-session state of the dashboard (the filter
// selection) and the explicit cache for the loaded route table. The table
// is immutable after load and therefore safely shared across sessions; the
// selections are strictly per-session.
package session

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"ratedash/internal/dataprocessing"
	"ratedash/pkg/contracts/domain"
)

// DatasetCache loads the rate sheet exactly once and serves the cached table
// afterwards. There is no invalidation rule: a process restart is the only
// way to pick up a new sheet. Concurrent first loads are collapsed into a
// single read via singleflight.
type DatasetCache struct {
	path   string
	logger *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	records []domain.RouteRecord
	loaded  bool
}

// NewDatasetCache creates a cache for the workbook at path. Nothing is read
// until the first Get.
func NewDatasetCache(path string, logger *slog.Logger) *DatasetCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetCache{path: path, logger: logger}
}

// Get returns the normalized route table, loading it on first use. A failed
// load is not cached, so a later Get retries the read.
func (c *DatasetCache) Get(ctx context.Context) ([]domain.RouteRecord, error) {
	c.mu.RLock()
	if c.loaded {
		records := c.records
		c.mu.RUnlock()
		return records, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do("load", func() (interface{}, error) {
		c.mu.RLock()
		if c.loaded {
			records := c.records
			c.mu.RUnlock()
			return records, nil
		}
		c.mu.RUnlock()

		c.logger.InfoContext(ctx, "loading rate sheet", slog.String("path", c.path))
		records, err := dataprocessing.LoadWorkbook(c.path, c.logger)
		if err != nil {
			c.logger.ErrorContext(ctx, "rate sheet load failed", slog.String("error", err.Error()))
			return nil, err
		}

		c.mu.Lock()
		c.records = records
		c.loaded = true
		c.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.RouteRecord), nil
}

// Loaded reports whether the table is already in memory, without triggering
// a load. Used by the readiness probe.
func (c *DatasetCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
