// Package loop runs a cooperative update loop against a host's frame clock.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrStopped is returned when Run is called on a driver that already stopped.
var ErrStopped = errors.New("loop driver stopped")

// Updater is the logical update step invoked once per host frame.
type Updater interface {
	// UpdateLoop runs one step for the given host timestamp and reports
	// whether the loop should stop.
	UpdateLoop(timestampMillis float64) (stop bool)
}

// UpdaterFunc adapts a function to the Updater interface.
type UpdaterFunc func(timestampMillis float64) bool

func (f UpdaterFunc) UpdateLoop(timestampMillis float64) bool {
	return f(timestampMillis)
}

// Host is the frame-scheduling primitive. RequestNext blocks until the
// host's next frame and returns its timestamp in milliseconds. Timestamps
// never decrease.
type Host interface {
	RequestNext(ctx context.Context) (timestampMillis float64, err error)
}

// State of a Driver.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Driver repeatedly asks the host for the next frame and hands each
// timestamp to the updater until the updater asks to stop.
type Driver struct {
	host    Host
	updater Updater
	state   State
	frames  uint64
}

func NewDriver(host Host, updater Updater) *Driver {
	return &Driver{host: host, updater: updater}
}

// Run loops until the updater stops it or the host fails. A host failure is
// fatal: it is returned wrapped and the driver moves to Stopped.
func (d *Driver) Run(ctx context.Context) error {
	if d.state == Stopped {
		return ErrStopped
	}
	defer func() { d.state = Stopped }()

	for {
		ts, err := d.host.RequestNext(ctx)
		if err != nil {
			slog.Debug("Loop driver stopping on host error", "frames", d.frames, "error", err)
			return fmt.Errorf("request next frame: %w", err)
		}
		d.frames++
		if d.updater.UpdateLoop(ts) {
			slog.Debug("Loop driver stopped by updater", "frames", d.frames, "timestamp_ms", ts)
			return nil
		}
	}
}

func (d *Driver) State() State {
	return d.state
}

// Frames returns how many host frames have been delivered to the updater.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Run drives updater from host until it stops.
func Run(ctx context.Context, host Host, updater Updater) error {
	return NewDriver(host, updater).Run(ctx)
}
