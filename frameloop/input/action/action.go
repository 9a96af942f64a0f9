package action

import "fmt"

// Action represents control requests a host can make of the loop
type Action int

const (
	// Frame rate display
	RateDisplayToggle Action = iota
	RateReset

	// Update period
	PeriodDecrease // faster updates
	PeriodIncrease // slower updates

	// Loop control
	Quit
)

// Info describes an action for logs and help text
type Info struct {
	Name        string
	Description string
}

var infos = map[Action]Info{
	RateDisplayToggle: {"rate-display-toggle", "Toggle frame rate display"},
	RateReset:         {"rate-reset", "Reset metronome and frame rate sampling"},
	PeriodDecrease:    {"period-decrease", "Shorten the update period"},
	PeriodIncrease:    {"period-increase", "Lengthen the update period"},
	Quit:              {"quit", "Stop the loop"},
}

// GetInfo returns metadata for an action
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Name: fmt.Sprintf("action-%d", int(act)), Description: "Unknown action"}
}

func (a Action) String() string {
	return GetInfo(a).Name
}
