package metronome

// Simple ticks at most once per period but does not compensate for late
// observations, so sustained lateness lowers the effective tick rate.
type Simple struct {
	periodMillis float64
	timeNextTick float64
}

var _ Metronome = (*Simple)(nil)

// NewSimple returns a simple metronome whose first deadline is nowMillis + periodMillis.
func NewSimple(periodMillis, nowMillis float64) *Simple {
	return &Simple{periodMillis: periodMillis, timeNextTick: nowMillis + periodMillis}
}

func (s *Simple) Reset(nowMillis float64) {
	s.timeNextTick = nowMillis + s.periodMillis
}

func (s *Simple) SetPeriodMillis(periodMillis float64) {
	s.periodMillis = periodMillis
}

func (s *Simple) SetTimeNextTick(timeMillis float64) {
	s.timeNextTick = timeMillis
}

func (s *Simple) Tick(nowMillis float64) bool {
	if nowMillis < s.timeNextTick {
		return false
	}
	s.timeNextTick = nowMillis + s.periodMillis
	return true
}

func (s *Simple) PeriodMillis() float64 { return s.periodMillis }
func (s *Simple) TimeNextTick() float64 { return s.timeNextTick }
