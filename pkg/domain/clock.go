package domain

import "time"

// Clock abstracts the source of time so services can be tested with a
// deterministic clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
