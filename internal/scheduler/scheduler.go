package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task once right away, then on each tick until ctx is done.
// Task errors are logged and do not stop the loop.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	log := slog.Default().With("component", "scheduler", "task", name)

	run := func() {
		start := time.Now()
		if err := task(ctx); err != nil {
			log.Error("task failed", "err", err)
			return
		}
		log.Debug("task done", "dur_ms", time.Since(start).Milliseconds())
	}

	if ctx.Err() != nil {
		return
	}
	run()

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
