package profiling

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartClock(t *testing.T) {
	start, err := StartClock()
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	elapsed := start.Elapsed()

	assert.GreaterOrEqual(t, elapsed, uint64(5*time.Millisecond))
	assert.Less(t, elapsed, uint64(time.Second))
}

func TestElapsedIsMonotonic(t *testing.T) {
	start, err := StartClock()
	require.NoError(t, err)

	prev := start.Elapsed()
	for i := 0; i < 10_000; i++ {
		cur := start.Elapsed()
		require.GreaterOrEqual(t, cur, prev, "reading %d went backwards", i)
		prev = cur
	}
}

func TestElapsedBeforeStartReadsZero(t *testing.T) {
	future := Instant{start: nanotime() + int64(time.Hour)}
	assert.Equal(t, uint64(0), future.Elapsed())
}

func TestClockResolution(t *testing.T) {
	res, err := clockResolution()
	require.NoError(t, err)
	assert.Greater(t, res, time.Duration(0))
	assert.LessOrEqual(t, res, MaxClockResolution)
}

func TestInstantDuration(t *testing.T) {
	start, err := StartClock()
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, start.Duration(), time.Millisecond)
}

// withResolution replaces the timer resolution source and clears the cached
// clock check for the duration of the test.
func withResolution(t *testing.T, fn func() (time.Duration, error)) {
	t.Helper()
	reset := func() {
		checkOnce = sync.Once{}
		checkErr = nil
	}
	prev := resolution
	resolution = fn
	reset()
	t.Cleanup(func() {
		resolution = prev
		reset()
	})
}

func TestStartClockUnavailable(t *testing.T) {
	errNoTimer := errors.New("no timer")

	tests := []struct {
		name string
		res  func() (time.Duration, error)
		msg  string
	}{
		{
			name: "resolution query fails",
			res:  func() (time.Duration, error) { return 0, errNoTimer },
			msg:  "no timer",
		},
		{
			name: "resolution too coarse",
			res:  func() (time.Duration, error) { return time.Millisecond, nil },
			msg:  "resolution 1ms exceeds 1µs",
		},
		{
			name: "resolution zero",
			res:  func() (time.Duration, error) { return 0, nil },
			msg:  "exceeds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withResolution(t, tt.res)

			start, err := StartClock()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrClockUnavailable)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, Instant{}, start)
		})
	}
}

func TestClockCheckRunsOnce(t *testing.T) {
	calls := 0
	withResolution(t, func() (time.Duration, error) {
		calls++
		return time.Nanosecond, nil
	})

	for i := 0; i < 5; i++ {
		_, err := StartClock()
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)
}

func TestClockResolutionAtLimit(t *testing.T) {
	withResolution(t, func() (time.Duration, error) { return MaxClockResolution, nil })

	_, err := StartClock()
	assert.NoError(t, err)
}
