package framerate

import "log/slog"

// Inputs is the control snapshot read by Updater once per cycle.
type Inputs interface {
	// DisplayChangeRequested returns the requested display state, if any.
	DisplayChangeRequested() (enabled bool, ok bool)
	ResetRequested() bool
	TimeToSample() bool
	PeriodChangeRequested() (periodMillis float64, ok bool)
	CurrentTimestamp() float64
}

// Updater drives a Rater from live control signals. Within one cycle the
// display toggle applies first, then a period change, then a reset (which
// skips sampling), then sampling.
type Updater struct {
	display bool
	rater   Rater
}

func NewUpdater(display bool, rater Rater) *Updater {
	return &Updater{display: display, rater: rater}
}

func (u *Updater) Update(inputs Inputs) {
	if display, ok := inputs.DisplayChangeRequested(); ok {
		u.display = display
		if display {
			u.rater.Clear()
		}
		slog.Debug("Frame rate display changed", "enabled", display)
	}
	if period, ok := inputs.PeriodChangeRequested(); ok {
		u.rater.UpdateSampleWindowSize(period)
	}
	if inputs.ResetRequested() {
		u.rater.Clear()
		return
	}
	if u.display && inputs.TimeToSample() {
		u.rater.Sample(inputs.CurrentTimestamp())
	}
}

// Display reports whether frame rate sampling is enabled.
func (u *Updater) Display() bool {
	return u.display
}

func (u *Updater) Rater() Rater {
	return u.rater
}
