package input

// Snapshot is the control signal state for a single loop cycle. It is
// rebuilt every cycle and never retained.
type Snapshot struct {
	Display        bool
	DisplayChanged bool
	Period         float64
	PeriodChanged  bool
	Reset          bool
	Sample         bool
	TimeMillis     float64
}

func (s Snapshot) DisplayChangeRequested() (bool, bool)   { return s.Display, s.DisplayChanged }
func (s Snapshot) ResetRequested() bool                   { return s.Reset }
func (s Snapshot) TimeToSample() bool                     { return s.Sample }
func (s Snapshot) PeriodChangeRequested() (float64, bool) { return s.Period, s.PeriodChanged }
func (s Snapshot) CurrentTimestamp() float64              { return s.TimeMillis }

// WithTimeToSample returns a copy flagged with whether the periodic work is due.
func (s Snapshot) WithTimeToSample(sample bool) Snapshot {
	s.Sample = sample
	return s
}
