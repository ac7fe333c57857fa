package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"careerflow-engine/internal/scheduler"
)

func TestEvery(t *testing.T) {
	t.Parallel()

	t.Run("runs immediately and on ticks", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var n atomic.Int32
		done := make(chan struct{})

		go func() {
			defer close(done)
			scheduler.Every(ctx, 5*time.Millisecond, "count", func(context.Context) error {
				if n.Add(1) >= 3 {
					cancel()
				}
				return errors.New("keeps going")
			})
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("scheduler did not stop")
		}
		assert.GreaterOrEqual(t, n.Load(), int32(3))
	})

	t.Run("cancelled context never runs", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ran := false

		scheduler.Every(ctx, time.Millisecond, "noop", func(context.Context) error {
			ran = true
			return nil
		})

		assert.False(t, ran)
	})
}
