package timing

import "context"

// VirtualHost is a simulated frame clock. Frame n is nominally delivered at
// n*step, delayed by optional jitter, and requests return immediately. Runs
// are deterministic and as fast as the CPU allows.
type VirtualHost struct {
	nowMillis  float64
	stepMillis float64
	frame      int

	// Jitter returns the lateness of the given frame. Negative values are
	// ignored and timestamps never decrease.
	Jitter func(frame int) float64
}

func NewVirtualHost(refreshHz float64) *VirtualHost {
	return &VirtualHost{stepMillis: Millis(RefreshPeriod(refreshHz))}
}

// NewVirtualHostStep creates a virtual host with an explicit frame step.
func NewVirtualHostStep(stepMillis float64) *VirtualHost {
	return &VirtualHost{stepMillis: max(stepMillis, 0)}
}

func (v *VirtualHost) RequestNext(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ts := float64(v.frame) * v.stepMillis
	if v.Jitter != nil {
		ts += max(v.Jitter(v.frame), 0)
	}
	v.nowMillis = max(ts, v.nowMillis)
	v.frame++
	return v.nowMillis, nil
}

// Now returns the last delivered timestamp.
func (v *VirtualHost) Now() float64 {
	return v.nowMillis
}
