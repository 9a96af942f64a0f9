package metronome

// Delta subtracts the overshoot of each tick from the next period, keeping
// the long-run tick rate on the original phase. When a full period or more
// was missed it fires once and restarts the phase at now, never bursting
// catch-up ticks.
type Delta struct {
	periodMillis float64
	timeNextTick float64
}

var _ Metronome = (*Delta)(nil)

// NewDelta returns a delta metronome whose first deadline is nowMillis + periodMillis.
func NewDelta(periodMillis, nowMillis float64) *Delta {
	return &Delta{periodMillis: periodMillis, timeNextTick: nowMillis + periodMillis}
}

func (d *Delta) Reset(nowMillis float64) {
	d.timeNextTick = nowMillis + d.periodMillis
}

func (d *Delta) SetPeriodMillis(periodMillis float64) {
	d.periodMillis = periodMillis
}

func (d *Delta) SetTimeNextTick(timeMillis float64) {
	d.timeNextTick = timeMillis
}

func (d *Delta) Tick(nowMillis float64) bool {
	overshoot := nowMillis - d.timeNextTick
	if overshoot < 0 {
		return false
	}
	remaining := d.periodMillis - overshoot
	// a whole period missed: resynchronise instead of leaving the deadline at now
	if remaining <= 0 {
		remaining = d.periodMillis
	}
	d.timeNextTick = nowMillis + remaining
	return true
}

func (d *Delta) PeriodMillis() float64 { return d.periodMillis }
func (d *Delta) TimeNextTick() float64 { return d.timeNextTick }
