//go:build !linux

package profiling

import (
	"errors"
	"time"
)

// clockResolution measures the smallest observable step of nanotime on
// platforms without a resolution syscall.
func clockResolution() (time.Duration, error) {
	const (
		attempts = 100
		maxSpins = 1 << 20
	)

	best := int64(-1)
	for i := 0; i < attempts; i++ {
		t0 := nanotime()
		t1 := t0
		for spins := 0; t1 == t0; spins++ {
			if spins == maxSpins {
				return 0, errors.New("clock did not advance")
			}
			t1 = nanotime()
		}
		if d := t1 - t0; best < 0 || d < best {
			best = d
		}
	}
	return time.Duration(best), nil
}
