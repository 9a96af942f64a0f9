package metronome

import "log/slog"

// Inputs is the per-cycle control snapshot read by Updater.
type Inputs interface {
	PeriodChangeRequested() (periodMillis float64, ok bool)
	ResetRequested() bool
	CurrentTimestamp() float64
}

// Updater applies live configuration changes to a Metronome and ticks it.
type Updater struct {
	metronome Metronome
}

func NewUpdater(m Metronome) *Updater {
	return &Updater{metronome: m}
}

// Update applies a requested period change, then either resets the
// metronome (no tick this cycle) or ticks it. It returns true when the
// periodic work is due.
func (u *Updater) Update(inputs Inputs) bool {
	now := inputs.CurrentTimestamp()
	if period, ok := inputs.PeriodChangeRequested(); ok {
		clamped := ClampPeriodMillis(period)
		if clamped != period {
			slog.Warn("Metronome period clamped", "requested_ms", period, "period_ms", clamped)
		}
		u.metronome.SetPeriodMillis(clamped)
		u.metronome.Reset(now)
		slog.Debug("Metronome period changed", "period_ms", clamped)
	}
	if inputs.ResetRequested() {
		u.metronome.Reset(now)
		return false
	}
	return u.metronome.Tick(now)
}

func (u *Updater) Metronome() Metronome {
	return u.metronome
}
