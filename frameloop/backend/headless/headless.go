package headless

import (
	"log/slog"

	"github.com/valerio/go-frameloop/frameloop/backend"
	"github.com/valerio/go-frameloop/frameloop/input/action"
)

// Backend implements the Backend interface for automated runs and batch
// measurements: it logs progress and quits after a tick budget.
type Backend struct {
	config      backend.Config
	tickCount   int
	maxTicks    int
	logInterval int
	last        backend.Status
}

// New creates a headless backend. maxTicks <= 0 runs until stopped
// elsewhere; logInterval <= 0 disables progress logs.
func New(maxTicks, logInterval int) *Backend {
	return &Backend{
		maxTicks:    maxTicks,
		logInterval: logInterval,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	slog.Info("Running headless mode", "ticks", h.maxTicks, "log_interval", h.logInterval)
	return nil
}

// PollInput returns nothing: headless runs are steered through Update.
func (h *Backend) PollInput() ([]action.Action, error) {
	return nil, nil
}

// Update records a tick and signals Quit once the tick budget is spent.
func (h *Backend) Update(status backend.Status) ([]action.Action, error) {
	h.tickCount++
	h.last = status

	if h.logInterval > 0 && h.tickCount%h.logInterval == 0 {
		attrs := []any{
			"completed", h.tickCount,
			"total", h.maxTicks,
			"time_ms", status.TimestampMillis,
			"period_ms", status.PeriodMillis,
		}
		if status.RateDisplay {
			attrs = append(attrs, "fps", status.RateEstimate, "nominal_fps", status.NominalRate())
		}
		slog.Info("Tick progress", attrs...)
	}

	if h.maxTicks > 0 && h.tickCount >= h.maxTicks {
		slog.Info("Headless execution completed",
			"ticks", h.tickCount,
			"time_ms", status.TimestampMillis,
			"fps", status.RateEstimate)
		return []action.Action{action.Quit}, nil
	}

	return nil, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// Ticks returns how many ticks the backend has seen.
func (h *Backend) Ticks() int {
	return h.tickCount
}

// Last returns the most recent status.
func (h *Backend) Last() backend.Status {
	return h.last
}
