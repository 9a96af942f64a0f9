// Package framerate estimates how fast updates are actually happening from a
// sliding window of their timestamps.
package framerate

const (
	// MaxWindowSize bounds the number of retained sample timestamps.
	MaxWindowSize = 1000

	millisPerSecond = 1000.0
	// sampleSpanMillis is how much time the target window should cover.
	sampleSpanMillis = 1000.0
)

// Rater tracks update timestamps and derives a frames-per-second estimate.
type Rater interface {
	// Clear drops every sample and zeroes the estimate.
	Clear()

	// Sample records an update at nowMillis. The result is reserved and
	// currently always false.
	Sample(nowMillis float64) bool

	// UpdateSampleWindowSize sizes the window to span about one second at
	// the expected period, then clears it.
	UpdateSampleWindowSize(periodMillis float64)

	RateEstimate() float64
}
