package clock

import "time"

// Clock abstracts time for deterministic tests. The engine evaluates all
// time-based transitions lazily against this clock; there are no timers.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
