package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// TreeRefresher re-downloads the category tree into the response cache.
type TreeRefresher interface {
	Refresh(ctx context.Context) error
}

// TreeRefreshWorker keeps the cached category tree warm so page loads
// rarely wait on the mirrors.
type TreeRefreshWorker struct {
	refresher TreeRefresher
	interval  time.Duration
}

// NewTreeRefreshWorker constructs a TreeRefreshWorker.
func NewTreeRefreshWorker(refresher TreeRefresher, interval time.Duration) *TreeRefreshWorker {
	return &TreeRefreshWorker{
		refresher: refresher,
		interval:  interval,
	}
}

// Start begins the periodic refresh loop and listens for context cancellation.
func (w *TreeRefreshWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting tree refresh worker")

	// Run immediately on start
	w.run(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Tree refresh worker stopped")
			return
		}
	}
}

func (w *TreeRefreshWorker) run(ctx context.Context) {
	start := time.Now()
	if err := w.refresher.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to refresh category tree")
		return
	}
	log.Debug().Dur("duration", time.Since(start)).Msg("Category tree refreshed")
}
