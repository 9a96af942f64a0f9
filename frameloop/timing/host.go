// Package timing provides frame clocks that drive the loop package.
package timing

import (
	"math"
	"time"

	"github.com/valerio/go-frameloop/frameloop/loop"
)

// DefaultRefreshHz is the display refresh rate assumed when none is configured.
const DefaultRefreshHz = 60.0

var (
	_ loop.Host = (*TickerHost)(nil)
	_ loop.Host = (*AdaptiveHost)(nil)
	_ loop.Host = (*VirtualHost)(nil)
)

// RefreshPeriod returns the frame duration for a refresh rate in Hz.
func RefreshPeriod(hz float64) time.Duration {
	if !(hz > 0) || math.IsInf(hz, 1) {
		hz = DefaultRefreshHz
	}
	return time.Duration(float64(time.Second) / hz)
}

// Millis converts a duration into fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
