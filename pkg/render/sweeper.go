package render

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically drops expired entries from a MemoryCache on a cron
// schedule. Reads already skip expired entries, so the sweeper exists only
// to reclaim memory between invalidations.
type Sweeper struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// NewSweeper schedules sweeps of the cache. The schedule is a standard
// five-field cron expression.
func NewSweeper(cache *MemoryCache, schedule string, logger *slog.Logger) (*Sweeper, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "cache_sweeper")

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if removed := cache.Sweep(); removed > 0 {
			logger.Debug("swept expired cache entries", "removed", removed)
		}
	})
	if err != nil {
		return nil, err
	}
	return &Sweeper{cron: c, logger: logger}, nil
}

// Start begins running sweeps in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts scheduling. A sweep already in flight runs to completion.
func (s *Sweeper) Stop() {
	s.cron.Stop()
}
