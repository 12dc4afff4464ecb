package reminders

import (
	"context"
	"sync"
	"time"

	"seatly/internal/shared/config"
	"seatly/pkg/logger"
)

// Purger removes bookings past the retention horizon. The booking service
// satisfies it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// JobProcessor owns the background loops: the reminder sweep on its short
// cadence and the retention purge on its long one. Start is idempotent and
// Stop cancels in-flight work and waits for the loops to exit, so tests
// and shutdown paths can call them freely.
type JobProcessor struct {
	sweeper       *Sweeper
	purger        Purger
	sweepInterval time.Duration
	purgeInterval time.Duration
	logger        *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewJobProcessor(sweeper *Sweeper, purger Purger, cfg *config.Config, log *logger.Logger) *JobProcessor {
	return &JobProcessor{
		sweeper:       sweeper,
		purger:        purger,
		sweepInterval: cfg.Reminder.SweepInterval,
		purgeInterval: cfg.Reminder.PurgeInterval,
		logger:        log,
	}
}

// Start launches the loops. Calling Start on a running processor is a no-op.
func (jp *JobProcessor) Start() {
	jp.mu.Lock()
	defer jp.mu.Unlock()
	if jp.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	jp.cancel = cancel
	jp.done = make(chan struct{})
	jp.running = true

	go jp.run(ctx)
	jp.logger.Info("Reminder job processor started",
		"sweep_interval", jp.sweepInterval,
		"purge_interval", jp.purgeInterval,
	)
}

// Stop cancels the loops and blocks until they exit. Safe to call when not
// running.
func (jp *JobProcessor) Stop() {
	jp.mu.Lock()
	if !jp.running {
		jp.mu.Unlock()
		return
	}
	cancel, done := jp.cancel, jp.done
	jp.running = false
	jp.mu.Unlock()

	cancel()
	<-done
	jp.logger.Info("Reminder job processor stopped")
}

func (jp *JobProcessor) run(ctx context.Context) {
	defer close(jp.done)

	sweepTicker := time.NewTicker(jp.sweepInterval)
	defer sweepTicker.Stop()
	purgeTicker := time.NewTicker(jp.purgeInterval)
	defer purgeTicker.Stop()

	// One sweep immediately so a restart does not wait a full interval
	jp.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweepTicker.C:
			jp.sweep(ctx)
		case <-purgeTicker.C:
			jp.purge(ctx)
		}
	}
}

func (jp *JobProcessor) sweep(ctx context.Context) {
	if err := jp.sweeper.Sweep(ctx); err != nil {
		jp.logger.Error("Reminder sweep failed", "error", err)
	}
}

func (jp *JobProcessor) purge(ctx context.Context) {
	purged, err := jp.purger.PurgeExpired(ctx)
	if err != nil {
		jp.logger.Error("Booking purge failed", "error", err)
		return
	}
	if purged > 0 {
		jp.logger.Info("Purged expired bookings", "count", purged)
	}
}
