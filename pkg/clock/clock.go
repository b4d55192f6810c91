package clock

import "time"

// Timer is a cancellable deferred call created by Clock.AfterFunc.
type Timer interface {
	// Stop prevents the timer from firing.
	// It returns false if the timer has already fired or been stopped.
	Stop() bool
}

// Clock is the time source used by schedulers.
// Implementations must be safe for concurrent use.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for the duration to elapse and then calls f.
	// f is never called synchronously from within AfterFunc, even for d <= 0.
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(max(d, 0), f)
}
