package profiling

import "sync/atomic"

// sinkArmed is never set. Loading it is opaque to the compiler, so a value
// passed to BlackBox has to exist at runtime even though the store below
// never happens.
var (
	sinkArmed atomic.Bool
	sink      any
)

// BlackBox returns v unchanged while forcing the compiler to treat v as used.
//
// The call cannot be inlined or removed, and the guarded store means the
// producer of v cannot be constant folded away. Feeding every loop result
// through BlackBox keeps the loop itself alive as well.
//
//go:noinline
func BlackBox[T any](v T) T {
	if sinkArmed.Load() {
		sink = v
	}
	return v
}
