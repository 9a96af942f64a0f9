package metronome

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MinPeriodMillis is the smallest period callers should configure. A zero or
// negative period would leave the deadline where it is (or move it backwards).
const MinPeriodMillis = 1.0

// MaxPeriodMillis is the slowest period the metronome accepts. An infinite
// period would push the deadline to +Inf and never tick again.
const MaxPeriodMillis = 10_000.0

// ErrUnknownPolicy is returned when a policy name is not recognised.
var ErrUnknownPolicy = errors.New("unknown metronome policy")

// Metronome decides when a periodic tick is due.
type Metronome interface {
	// Reset re-anchors the next deadline to now + period.
	Reset(nowMillis float64)

	SetPeriodMillis(periodMillis float64)
	SetTimeNextTick(timeMillis float64)

	// Tick reports whether the deadline has been reached and, if so,
	// schedules the next one.
	Tick(nowMillis float64) bool

	PeriodMillis() float64
	TimeNextTick() float64
}

// Policy selects a Metronome implementation.
type Policy int

const (
	// PolicySimple restarts a full period from whenever a tick is observed.
	PolicySimple Policy = iota
	// PolicyDelta keeps ticks on the original phase unless a whole period was missed.
	PolicyDelta
)

func (p Policy) String() string {
	switch p {
	case PolicySimple:
		return "simple"
	case PolicyDelta:
		return "delta"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple":
		return PolicySimple, nil
	case "delta", "":
		return PolicyDelta, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	switch p {
	case PolicySimple, PolicyDelta:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// New creates a metronome for the given policy. The first tick is due
// immediately; call Reset to start counting from a known time.
func New(policy Policy, periodMillis float64) (Metronome, error) {
	switch policy {
	case PolicySimple:
		return &Simple{periodMillis: periodMillis}, nil
	case PolicyDelta:
		return &Delta{periodMillis: periodMillis}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(policy))
}

// ClampPeriodMillis bounds a period to [MinPeriodMillis, MaxPeriodMillis].
// NaN maps to MinPeriodMillis.
func ClampPeriodMillis(periodMillis float64) float64 {
	switch {
	case math.IsNaN(periodMillis), periodMillis < MinPeriodMillis:
		return MinPeriodMillis
	case periodMillis > MaxPeriodMillis:
		return MaxPeriodMillis
	}
	return periodMillis
}
