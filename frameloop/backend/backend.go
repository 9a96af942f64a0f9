package backend

import (
	"github.com/valerio/go-frameloop/frameloop/input/action"
	"github.com/valerio/go-frameloop/frameloop/metronome"
)

// Backend represents a host surface for the loop (terminal, headless, ...).
// Backends are responsible for:
// - Showing the loop status in their specific output
// - Translating platform-specific input events to Actions
// They never mutate scheduling state; the returned actions are applied by
// the loop on the next cycle.
type Backend interface {
	// Init configures the backend. This is a required step before calling
	// PollInput or Update.
	Init(config Config) error

	// PollInput is called on every host frame, tick or not, and returns the
	// control actions gathered since the previous call. It must not block.
	PollInput() ([]action.Action, error)

	// Update presents the status for one tick and returns any further
	// control actions.
	Update(status Status) ([]action.Action, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// Config holds configuration for backends
type Config struct {
	Title string
	RunID string
}

// Status is what the scheduling core exposes after each tick.
type Status struct {
	TimestampMillis float64
	Ticks           uint64
	PeriodMillis    float64
	Policy          metronome.Policy
	RateDisplay     bool
	RateEstimate    float64
}

// NominalRate returns the tick rate the configured period aims for.
func (s Status) NominalRate() float64 {
	if s.PeriodMillis <= 0 {
		return 0
	}
	return 1000.0 / s.PeriodMillis
}
