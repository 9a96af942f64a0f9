// Package frameloop wires the metronome, the frame rater and a backend into
// a single loop step driven by a host frame clock.
package frameloop

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-frameloop/frameloop/backend"
	"github.com/valerio/go-frameloop/frameloop/framerate"
	"github.com/valerio/go-frameloop/frameloop/input"
	"github.com/valerio/go-frameloop/frameloop/input/action"
	"github.com/valerio/go-frameloop/frameloop/loop"
	"github.com/valerio/go-frameloop/frameloop/metronome"
)

// Animator is the logical update step. It owns all scheduling state; every
// mutation happens inside UpdateLoop.
type Animator struct {
	policy    metronome.Policy
	metronome *metronome.Updater
	rater     *framerate.Updater
	controls  *input.Manager
	backend   backend.Backend

	ticks uint64
	err   error
}

var _ loop.Updater = (*Animator)(nil)

// Options configures an Animator.
type Options struct {
	Policy       metronome.Policy
	PeriodMillis float64
	RateDisplay  bool
}

// NewAnimator builds the scheduling core for the given options and drives
// the backend with it. The backend must already be initialized.
func NewAnimator(opts Options, b backend.Backend) (*Animator, error) {
	period := metronome.ClampPeriodMillis(opts.PeriodMillis)
	m, err := metronome.New(opts.Policy, period)
	if err != nil {
		return nil, err
	}

	return &Animator{
		policy:    opts.Policy,
		metronome: metronome.NewUpdater(m),
		rater:     framerate.NewUpdater(opts.RateDisplay, framerate.NewSimpleRater(period)),
		controls:  input.NewManager(opts.RateDisplay, period, metronome.MinPeriodMillis),
		backend:   b,
	}, nil
}

// UpdateLoop runs one cycle: poll backend input, apply control requests,
// tick the metronome, sample the frame rate on a tick and hand the status to
// the backend.
func (a *Animator) UpdateLoop(timestampMillis float64) bool {
	if a.controls.QuitRequested() {
		return true
	}

	// input is polled every frame so that controls do not wait for a tick
	actions, err := a.backend.PollInput()
	if err != nil {
		a.err = fmt.Errorf("backend input: %w", err)
		slog.Error("Backend input poll failed", "tick", a.ticks, "error", err)
		return true
	}
	if a.trigger(actions) {
		return true
	}

	snapshot := a.controls.Snapshot(timestampMillis)
	if snapshot.ResetRequested() {
		slog.Info("Reset requested", "time_ms", timestampMillis)
	}
	if period, ok := snapshot.PeriodChangeRequested(); ok {
		slog.Info("Update period changed", "period_ms", period, "nominal_fps", 1000.0/period)
	}

	due := a.metronome.Update(snapshot)
	a.rater.Update(snapshot.WithTimeToSample(due))
	if !due {
		return false
	}

	a.ticks++
	actions, err = a.backend.Update(a.Status(timestampMillis))
	if err != nil {
		a.err = fmt.Errorf("backend update: %w", err)
		slog.Error("Backend update failed", "tick", a.ticks, "error", err)
		return true
	}
	return a.trigger(actions)
}

// trigger queues backend actions and reports whether one of them was Quit.
func (a *Animator) trigger(actions []action.Action) bool {
	for _, act := range actions {
		a.controls.Trigger(act)
	}
	return a.controls.QuitRequested()
}

// Status reports the current scheduling state.
func (a *Animator) Status(timestampMillis float64) backend.Status {
	return backend.Status{
		TimestampMillis: timestampMillis,
		Ticks:           a.ticks,
		PeriodMillis:    a.metronome.Metronome().PeriodMillis(),
		Policy:          a.policy,
		RateDisplay:     a.rater.Display(),
		RateEstimate:    a.rater.Rater().RateEstimate(),
	}
}

// Controls returns the input manager, for programmatic control requests.
func (a *Animator) Controls() *input.Manager {
	return a.controls
}

// Trigger queues a control action for the next cycle.
func (a *Animator) Trigger(act action.Action) {
	a.controls.Trigger(act)
}

// Ticks returns the number of metronome ticks so far.
func (a *Animator) Ticks() uint64 {
	return a.ticks
}

// Err returns the error that stopped the loop, if any.
func (a *Animator) Err() error {
	return a.err
}
