package framerate

import "math"

// SimpleRater is a Rater backed by a FIFO window of timestamps.
type SimpleRater struct {
	rate       float64
	targetSize int

	// window is a ring buffer; head indexes the oldest sample.
	window [MaxWindowSize]float64
	head   int
	count  int
}

var _ Rater = (*SimpleRater)(nil)

// NewSimpleRater creates a rater sized for the given expected period.
func NewSimpleRater(periodMillis float64) *SimpleRater {
	r := &SimpleRater{}
	r.UpdateSampleWindowSize(periodMillis)
	return r
}

// TargetWindowSize derives how many samples span roughly one second at
// periodMillis. An unknown (zero, negative or NaN) period yields
// MaxWindowSize; the result is always in [1, MaxWindowSize].
func TargetWindowSize(periodMillis float64) int {
	if math.IsNaN(periodMillis) || periodMillis <= 0 {
		return MaxWindowSize
	}
	size := math.Round(sampleSpanMillis / periodMillis)
	if size < 1 {
		return 1
	}
	if size > MaxWindowSize {
		return MaxWindowSize
	}
	return int(size)
}

func (r *SimpleRater) Clear() {
	r.head = 0
	r.count = 0
	r.rate = 0
}

func (r *SimpleRater) Sample(nowMillis float64) bool {
	deltas := r.count
	if deltas > 0 {
		size := min(r.targetSize, deltas)
		elapsed := nowMillis - r.at(deltas-size)
		// identical timestamps: keep the last good estimate
		if elapsed > 0 {
			r.rate = float64(size) * millisPerSecond / elapsed
		}
	}
	r.push(nowMillis)
	return false
}

// push appends a sample, evicting the oldest one when the window is full.
func (r *SimpleRater) push(nowMillis float64) {
	if r.count == MaxWindowSize {
		r.head = (r.head + 1) % MaxWindowSize
		r.count--
	}
	r.window[(r.head+r.count)%MaxWindowSize] = nowMillis
	r.count++
}

func (r *SimpleRater) UpdateSampleWindowSize(periodMillis float64) {
	if math.IsNaN(periodMillis) || periodMillis < 0 {
		periodMillis = 0
	}
	r.targetSize = TargetWindowSize(periodMillis)
	r.Clear()
}

func (r *SimpleRater) RateEstimate() float64 {
	return r.rate
}

func (r *SimpleRater) TargetWindowSize() int {
	return r.targetSize
}

// Len returns the number of retained samples.
func (r *SimpleRater) Len() int {
	return r.count
}

// At returns the i-th retained sample, oldest first.
func (r *SimpleRater) At(i int) float64 {
	return r.at(i)
}

func (r *SimpleRater) at(i int) float64 {
	return r.window[(r.head+i)%MaxWindowSize]
}
