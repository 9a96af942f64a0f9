package input

import "github.com/valerio/go-frameloop/frameloop/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
var DefaultKeyMap = map[string]action.Action{
	"f": action.RateDisplayToggle,
	"F": action.RateDisplayToggle,
	"r": action.RateReset,
	"R": action.RateReset,

	"+": action.PeriodDecrease,
	"=": action.PeriodDecrease, // Alternative without shift
	"-": action.PeriodIncrease,
	"_": action.PeriodIncrease, // Alternative with shift

	"Escape": action.Quit,
	"q":      action.Quit,
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
