//go:build linux

package profiling

import (
	"time"

	"golang.org/x/sys/unix"
)

// clockResolution asks the kernel for the resolution of CLOCK_MONOTONIC,
// the source behind runtime.nanotime on Linux.
func clockResolution() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGetres(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}
