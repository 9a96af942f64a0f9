package timing

import (
	"context"
	"time"
)

// TickerHost uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveHost but simpler and good enough for most cases.
// Frames that are missed while the loop is busy are dropped by the ticker.
type TickerHost struct {
	ticker *time.Ticker
	start  time.Time
	period time.Duration
}

func NewTickerHost(refreshHz float64) *TickerHost {
	period := RefreshPeriod(refreshHz)
	return &TickerHost{
		ticker: time.NewTicker(period),
		start:  time.Now(),
		period: period,
	}
}

func (t *TickerHost) RequestNext(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-t.ticker.C:
		return Millis(time.Since(t.start)), nil
	}
}

// Reset restarts the tick schedule, useful after pauses.
func (t *TickerHost) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerHost) Stop() {
	t.ticker.Stop()
}
