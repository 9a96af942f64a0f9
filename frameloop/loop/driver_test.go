package loop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedHost hands out fixed timestamps, then fails.
type scriptedHost struct {
	timestamps []float64
	requests   int
	err        error
}

func (h *scriptedHost) RequestNext(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if h.requests >= len(h.timestamps) {
		h.requests++
		return 0, h.err
	}
	ts := h.timestamps[h.requests]
	h.requests++
	return ts, nil
}

var errHostGone = errors.New("host gone")

func TestDriver_StopsWhenUpdaterSaysSo(t *testing.T) {
	host := &scriptedHost{timestamps: []float64{0, 16, 32, 48, 64}, err: errHostGone}
	var seen []float64
	d := NewDriver(host, UpdaterFunc(func(ts float64) bool {
		seen = append(seen, ts)
		return ts >= 32
	}))

	assert.Equal(t, Running, d.State())
	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, []float64{0, 16, 32}, seen, "steps run in host order")
	assert.Equal(t, 3, host.requests, "no frame requested after stop")
	assert.Equal(t, Stopped, d.State())
	assert.Equal(t, uint64(3), d.Frames())
}

func TestDriver_HostFailureIsFatal(t *testing.T) {
	host := &scriptedHost{timestamps: []float64{0, 16}, err: errHostGone}
	calls := 0
	d := NewDriver(host, UpdaterFunc(func(float64) bool {
		calls++
		return false
	}))

	err := d.Run(context.Background())

	assert.ErrorIs(t, err, errHostGone)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 3, host.requests, "failure is not retried")
	assert.Equal(t, Stopped, d.State())
}

func TestDriver_BootstrapFailure(t *testing.T) {
	host := &scriptedHost{err: errHostGone}
	called := false
	err := Run(context.Background(), host, UpdaterFunc(func(float64) bool {
		called = true
		return false
	}))

	assert.ErrorIs(t, err, errHostGone)
	assert.False(t, called)
}

func TestDriver_StoppedIsTerminal(t *testing.T) {
	host := &scriptedHost{timestamps: []float64{0, 1, 2}}
	d := NewDriver(host, UpdaterFunc(func(float64) bool { return true }))

	require.NoError(t, d.Run(context.Background()))
	assert.ErrorIs(t, d.Run(context.Background()), ErrStopped)
	assert.Equal(t, 1, host.requests)
}

func TestDriver_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	host := &scriptedHost{timestamps: make([]float64, 100)}
	d := NewDriver(host, UpdaterFunc(func(float64) bool {
		cancel()
		return false
	}))

	err := d.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(1), d.Frames())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
}
