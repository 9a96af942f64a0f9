package metronome

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimple_Tick(t *testing.T) {
	m := NewSimple(100, 0)

	for _, now := range []float64{0, 50, 99.999} {
		assert.False(t, m.Tick(now), "no tick before deadline at %v", now)
		assert.Equal(t, 100.0, m.TimeNextTick())
	}

	assert.True(t, m.Tick(100), "tick exactly at the deadline")
	assert.Equal(t, 200.0, m.TimeNextTick())

	// late observation starts a full period from now
	assert.True(t, m.Tick(237))
	assert.Equal(t, 337.0, m.TimeNextTick())
}

func TestSimple_DriftVersusDelta(t *testing.T) {
	simple := NewSimple(10, 0)
	delta := NewDelta(10, 0)
	simpleTicks, deltaTicks := 0, 0
	// frames every 3ms never land exactly on a 10ms deadline
	for now := 0.0; now <= 3000; now += 3 {
		if simple.Tick(now) {
			simpleTicks++
		}
		if delta.Tick(now) {
			deltaTicks++
		}
	}
	assert.InDelta(t, 300, deltaTicks, 1, "delta policy holds the nominal rate")
	assert.Less(t, simpleTicks, 260, "simple policy falls behind the nominal rate")
}

func TestDelta_ZeroDriftWithJitter(t *testing.T) {
	const period = 16.0
	m := NewDelta(period, 0)
	deadline := m.TimeNextTick()

	jitter := []float64{0, 3.5, 15.9, 0.1, 7, 12, 0}
	for i, j := range jitter {
		now := deadline + j
		require.True(t, m.Tick(now), "tick %d", i)
		assert.InDelta(t, deadline+period, m.TimeNextTick(), 1e-9, "tick %d", i)
		deadline = m.TimeNextTick()
	}
	assert.InDelta(t, period*float64(len(jitter)+1), deadline, 1e-9)
}

func TestDelta_NotDue(t *testing.T) {
	m := NewDelta(20, 100)
	assert.False(t, m.Tick(119.5))
	assert.Equal(t, 120.0, m.TimeNextTick())
}

func TestDelta_PhaseResetWhenPeriodMissed(t *testing.T) {
	tests := []struct {
		name      string
		overshoot float64
	}{
		{"exactly one period", 20},
		{"several periods", 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewDelta(20, 0)
			now := m.TimeNextTick() + tt.overshoot
			assert.True(t, m.Tick(now))
			assert.Equal(t, now+20, m.TimeNextTick())
			// no catch-up burst
			assert.False(t, m.Tick(now))
		})
	}
}

func TestDelta_DeadlineAdvancesPastTrigger(t *testing.T) {
	m := NewDelta(5, 0)
	for now := 0.0; now < 500; now += 3.7 {
		if m.Tick(now) {
			assert.Greater(t, m.TimeNextTick(), now)
		}
	}
}

func TestMetronome_Setters(t *testing.T) {
	for _, policy := range []Policy{PolicySimple, PolicyDelta} {
		t.Run(policy.String(), func(t *testing.T) {
			m, err := New(policy, 10)
			require.NoError(t, err)

			// first tick is due immediately
			assert.True(t, m.Tick(0))

			m.SetPeriodMillis(40)
			assert.Equal(t, 40.0, m.PeriodMillis())

			m.Reset(1000)
			assert.Equal(t, 1040.0, m.TimeNextTick())

			m.SetTimeNextTick(2000)
			assert.False(t, m.Tick(1999))
			assert.True(t, m.Tick(2000))
		})
	}
}

func TestNew_UnknownPolicy(t *testing.T) {
	_, err := New(Policy(7), 10)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"simple", PolicySimple, false},
		{"Delta", PolicyDelta, false},
		{"", PolicyDelta, false},
		{"fixed", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	var p Policy
	require.NoError(t, p.UnmarshalText([]byte("simple")))
	assert.Equal(t, PolicySimple, p)
	text, err := PolicyDelta.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "delta", string(text))
}

func TestClampPeriodMillis(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		want   float64
	}{
		{"negative", -5, MinPeriodMillis},
		{"zero", 0, MinPeriodMillis},
		{"in range", 16.5, 16.5},
		{"above maximum", 60_000, MaxPeriodMillis},
		{"NaN", math.NaN(), MinPeriodMillis},
		{"positive infinity", math.Inf(1), MaxPeriodMillis},
		{"negative infinity", math.Inf(-1), MinPeriodMillis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPeriodMillis(tt.period))
		})
	}
}
