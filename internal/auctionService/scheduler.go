package auction

import (
	"context"
	"time"

	"lostfound-registry/utils"
)

// Sweeper fires due auction boundaries
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (SweepResult, error)
}

// Scheduler runs a Sweeper on a fixed interval
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	now      func() time.Time
}

// NewScheduler creates a scheduler ticking every interval
func NewScheduler(sweeper Sweeper, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
// A failed sweep is logged and retried on the next tick.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	res, err := s.sweeper.Sweep(ctx, s.now())
	if err != nil {
		if ctx.Err() == nil {
			utils.Error("Auction sweep failed", map[string]any{"error": err.Error()})
		}
		return
	}
	if len(res.Opened) > 0 || len(res.Closed) > 0 {
		utils.Info("Auction sweep", map[string]any{"opened": res.Opened, "closed": res.Closed})
	}
}
