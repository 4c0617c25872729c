package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts wall-clock reads so manifest timestamps and run durations
// can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// New returns the system clock.
func New() Clock {
	return systemClock{}
}

var Module = fx.Module("clock",
	fx.Provide(New),
)
