package input

import (
	"log/slog"
	"time"

	"github.com/valerio/go-frameloop/frameloop/input/action"
	"github.com/valerio/go-frameloop/frameloop/metronome"
)

const (
	// debounceDuration is the minimum time between repeats of the same action
	debounceDuration = 150 * time.Millisecond

	// periodStepFactor scales the period on each increase/decrease
	periodStepFactor = 2.0

	// MaxPeriodMillis bounds how slow the period keys can make updates
	MaxPeriodMillis = metronome.MaxPeriodMillis
)

// Manager collects control actions between cycles and turns them into one
// Snapshot per cycle. It mirrors the display flag and period so that toggle
// and step actions become absolute change requests.
type Manager struct {
	display      bool
	periodMillis float64
	minPeriod    float64

	pending       Snapshot
	quit          bool
	lastTriggered map[action.Action]time.Time
	now           func() time.Time
}

// NewManager creates a manager mirroring the initial display flag and period.
// minPeriodMillis is the lower bound for period decreases.
func NewManager(display bool, periodMillis, minPeriodMillis float64) *Manager {
	return &Manager{
		display:       display,
		periodMillis:  periodMillis,
		minPeriod:     minPeriodMillis,
		lastTriggered: make(map[action.Action]time.Time),
		now:           time.Now,
	}
}

// Trigger handles the given action. Repeats of the same action inside the
// debounce window are dropped.
func (m *Manager) Trigger(act action.Action) {
	now := m.now()
	if last, ok := m.lastTriggered[act]; ok && now.Sub(last) < debounceDuration {
		return
	}
	m.lastTriggered[act] = now

	slog.Debug("Control action", "action", action.GetInfo(act).Description)

	switch act {
	case action.RateDisplayToggle:
		m.RequestDisplay(!m.display)
	case action.RateReset:
		m.pending.Reset = true
	case action.PeriodDecrease:
		m.RequestPeriod(m.periodMillis / periodStepFactor)
	case action.PeriodIncrease:
		m.RequestPeriod(m.periodMillis * periodStepFactor)
	case action.Quit:
		m.quit = true
	}
}

// RequestDisplay asks for the frame rate display to be switched on or off.
func (m *Manager) RequestDisplay(enabled bool) {
	m.display = enabled
	m.pending.Display = enabled
	m.pending.DisplayChanged = true
}

// RequestPeriod asks for a new update period, bounded to
// [minPeriodMillis, MaxPeriodMillis].
func (m *Manager) RequestPeriod(periodMillis float64) {
	periodMillis = min(max(periodMillis, m.minPeriod), MaxPeriodMillis)
	m.periodMillis = periodMillis
	m.pending.Period = periodMillis
	m.pending.PeriodChanged = true
}

// Snapshot returns the requests gathered since the previous call, stamped
// with the current host time, and starts a new cycle.
func (m *Manager) Snapshot(nowMillis float64) Snapshot {
	s := m.pending
	s.TimeMillis = nowMillis
	m.pending = Snapshot{}
	return s
}

// QuitRequested reports whether a Quit action has been triggered.
func (m *Manager) QuitRequested() bool {
	return m.quit
}

func (m *Manager) Display() bool {
	return m.display
}

func (m *Manager) PeriodMillis() float64 {
	return m.periodMillis
}
