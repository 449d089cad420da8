package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/ghist/pkg/log"
	"github.com/cbodonnell/ghist/pkg/metrics"
)

// TickSource reports how many ticks the game loop has completed.
type TickSource interface {
	Ticks() int64
}

type TickWatchdogWorker struct {
	ticks    TickSource
	metrics  *metrics.Metrics
	interval time.Duration

	lastTicks int64
	stalled   bool
}

type NewTickWatchdogWorkerOptions struct {
	Ticks    TickSource
	Metrics  *metrics.Metrics
	Interval time.Duration
}

// NewTickWatchdogWorker creates a new TickWatchdogWorker.
// The worker periodically logs loop statistics and reports
// an error when the game loop stops completing ticks.
func NewTickWatchdogWorker(opts NewTickWatchdogWorkerOptions) *TickWatchdogWorker {
	return &TickWatchdogWorker{
		ticks:    opts.Ticks,
		metrics:  opts.Metrics,
		interval: opts.Interval,
	}
}

func (w *TickWatchdogWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check returns false when no tick completed since the previous check.
func (w *TickWatchdogWorker) check() bool {
	ticks := w.ticks.Ticks()
	progressed := ticks > w.lastTicks
	w.lastTicks = ticks

	switch {
	case !progressed && !w.stalled:
		w.stalled = true
		log.Error("Game loop has not completed a tick in %s (stuck at tick %d)", w.interval, ticks)
	case progressed && w.stalled:
		w.stalled = false
		log.Warn("Game loop recovered at tick %d", ticks)
	case progressed:
		stats := w.metrics.Snapshot()
		log.Info("Game loop at tick %d, avg %dus, max %dus, %d push failures",
			ticks, stats["tick_avg_us"], stats["tick_max_us"], stats["push_failures"])
	}

	return progressed
}
