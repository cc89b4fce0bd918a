package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Ticking is the slice of CallService the ticker drives.
type Ticking interface {
	Tick(ctx context.Context) error
}

// DurationTicker delivers a scheduled tick to the call service on a fixed
// interval so active-call durations advance with wall-clock time instead of
// being coupled to a render cycle.
type DurationTicker struct {
	target   Ticking
	interval time.Duration
	logger   *zap.Logger
}

// NewDurationTicker creates the worker. Non-positive intervals fall back to 1s.
func NewDurationTicker(target Ticking, interval time.Duration, logger *zap.Logger) *DurationTicker {
	if interval <= 0 {
		interval = time.Second
	}
	return &DurationTicker{target: target, interval: interval, logger: logger}
}

// Start runs the tick loop until the context is cancelled.
func (t *DurationTicker) Start(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("duration ticker started", zap.Duration("interval", t.interval))

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("duration ticker stopped")
			return
		case <-ticker.C:
			if err := t.target.Tick(ctx); err != nil {
				t.logger.Warn("tick failed", zap.Error(err))
			}
		}
	}
}
