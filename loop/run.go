// Package loop drives per-frame updates outside of a windowing toolkit.
package loop

import (
	"context"
	"sync"
	"time"
)

// Run calls update from a single goroutine at cfg.TargetFPS until ctx is
// cancelled or the returned stop function is called. stop blocks until the
// in-flight frame has finished and is safe to call more than once.
func Run(ctx context.Context, cfg Config, update func(dt float64)) (stop func()) {
	stepper := NewStepper(cfg)
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(time.Duration(float64(time.Second) * stepper.FixedDelta()))
		defer ticker.Stop()

		var clock Clock
		clock.Tick(time.Now())
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				stepper.Advance(clock.Tick(now), update)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
