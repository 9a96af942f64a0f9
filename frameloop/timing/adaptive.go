package timing

import (
	"context"
	"log/slog"
	"time"
)

const (
	spinThreshold = 2 * time.Millisecond
	resyncAfter   = 5 * time.Millisecond
)

// AdaptiveHost uses precise timing with drift compensation.
// Combines sleep for efficiency with busy-waiting for accuracy.
type AdaptiveHost struct {
	period        time.Duration
	start         time.Time
	nextFrameTime time.Time
	frameCounter  int64

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func NewAdaptiveHost(refreshHz float64) *AdaptiveHost {
	now := time.Now()
	return &AdaptiveHost{
		period:        RefreshPeriod(refreshHz),
		start:         now,
		nextFrameTime: now,
		now:           time.Now,
		sleep:         sleepContext,
	}
}

func (a *AdaptiveHost) RequestNext(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := a.now()
	wait := a.nextFrameTime.Sub(now)
	if wait > 0 {
		if wait >= spinThreshold {
			if err := a.sleep(ctx, wait-time.Millisecond); err != nil {
				return 0, err
			}
		}
		for a.now().Before(a.nextFrameTime) {
			// busy-wait the last stretch, higher accuracy.
		}
	} else if wait < -resyncAfter {
		slog.Debug("Adaptive host behind schedule, resynchronising",
			"behind_ms", Millis(-wait), "frame", a.frameCounter)
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.period)
	a.frameCounter++
	return Millis(a.now().Sub(a.start)), nil
}

// Reset restarts the schedule from now, useful after pauses.
func (a *AdaptiveHost) Reset() {
	a.nextFrameTime = a.now()
	a.frameCounter = 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
