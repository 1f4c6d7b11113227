// Package times provides the clock abstraction and interruptible waits.
package times

import (
	"fmt"
	"time"
)

// Clock is the time source used by polling loops.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// After waits for the duration to elapse and then sends the current time.
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// WaitTime waits for d, returning false early if cancel fires first.
func WaitTime(clock Clock, d time.Duration, cancel <-chan struct{}) bool {
	if d <= 0 {
		return true
	}
	if clock == nil {
		clock = SystemClock{}
	}

	select {
	case <-clock.After(d):
		return true
	case <-cancel:
		return false
	}
}

// FormatETA renders a duration as HH:MM:SS.
func FormatETA(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
}
