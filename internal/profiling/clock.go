// Package profiling provides the low-level timing primitives used by the
// benchmark harness: a monotonic clock and an optimization barrier.
package profiling

import (
	"errors"
	"fmt"
	"sync"
	"time"
	_ "unsafe" // For go:linkname
)

// MaxClockResolution is the coarsest timer resolution the harness accepts.
// A clock that ticks slower than this cannot resolve a single sample.
const MaxClockResolution = time.Microsecond

// ErrClockUnavailable is returned when the platform high-resolution timer
// cannot be used. It is fatal for a benchmarking call.
var ErrClockUnavailable = errors.New("monotonic clock unavailable")

// nanotime returns the current time in nanoseconds from the monotonic clock
// This uses the runtime's nanotime function for maximum precision
//
//go:noescape
//go:linkname nanotime runtime.nanotime
func nanotime() int64

var (
	checkOnce sync.Once
	checkErr  error

	// resolution reports the platform timer resolution. Tests swap it to
	// simulate a missing or coarse clock.
	resolution = clockResolution
)

// checkClock verifies the platform timer once per process. Later calls
// return the cached outcome.
func checkClock() error {
	checkOnce.Do(func() {
		res, err := resolution()
		if err != nil {
			checkErr = fmt.Errorf("%w: %v", ErrClockUnavailable, err)
			return
		}
		if res <= 0 || res > MaxClockResolution {
			checkErr = fmt.Errorf("%w: resolution %v exceeds %v", ErrClockUnavailable, res, MaxClockResolution)
		}
	})
	return checkErr
}

// Instant is a reference point on the monotonic clock.
type Instant struct {
	start int64
}

// StartClock captures the current monotonic instant.
func StartClock() (Instant, error) {
	if err := checkClock(); err != nil {
		return Instant{}, err
	}
	return Instant{start: nanotime()}, nil
}

// Elapsed returns the nanoseconds since the instant was captured.
func (i Instant) Elapsed() uint64 {
	d := nanotime() - i.start
	if d < 0 {
		return 0
	}
	return uint64(d)
}

// Duration is Elapsed as a time.Duration.
func (i Instant) Duration() time.Duration {
	return time.Duration(i.Elapsed())
}
