package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Janitor periodically sweeps idle checkout drafts so an abandoned
// conversation cannot pin memory forever.
type Janitor struct {
	store    *Store
	interval time.Duration
	maxIdle  time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewJanitor constructs a draft sweeper.
func NewJanitor(store *Store, interval, maxIdle time.Duration, logger *slog.Logger) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if maxIdle <= 0 {
		maxIdle = 30 * time.Minute
	}
	return &Janitor{store: store, interval: interval, maxIdle: maxIdle, logger: logger}
}

// Start launches background sweeping.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go j.run(runCtx)
}

// Stop waits for the sweeper to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.mu.Unlock()

	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := j.store.SweepIdle(j.maxIdle); removed > 0 {
				j.logger.Info("swept idle checkout drafts", slog.Int("count", removed))
			}
		}
	}
}
