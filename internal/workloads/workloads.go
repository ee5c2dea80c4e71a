// Package workloads provides deterministic functions to exercise the
// benchmark harness from the command line.
package workloads

import (
	"hash/fnv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SumLoop adds 1..n one term at a time.
func SumLoop(n uint64) uint64 {
	var sum uint64
	for i := uint64(1); i <= n; i++ {
		sum += i
	}
	return sum
}

// SumFormula computes 1..n in closed form.
func SumFormula(n uint64) uint64 {
	return n * (n + 1) / 2
}

// FibIterative returns the n-th Fibonacci number.
func FibIterative(n uint64) uint64 {
	var a, b uint64 = 0, 1
	for i := uint64(0); i < n; i++ {
		a, b = b, a+b
	}
	return a
}

// FibRecursive returns the n-th Fibonacci number the exponential way.
func FibRecursive(n uint64) uint64 {
	if n < 2 {
		return n
	}
	return FibRecursive(n-1) + FibRecursive(n-2)
}

// SearchInput is a haystack and the needle to look for in it.
type SearchInput struct {
	Haystack string
	Needle   string
}

// ContainsNaive checks every offset of the haystack.
func ContainsNaive(in SearchInput) bool {
	h, n := in.Haystack, in.Needle
	for i := 0; i+len(n) <= len(h); i++ {
		if h[i:i+len(n)] == n {
			return true
		}
	}
	return false
}

// ContainsStdlib delegates to strings.Contains.
func ContainsStdlib(in SearchInput) bool {
	return strings.Contains(in.Haystack, in.Needle)
}

// HashXX hashes data with xxhash64.
func HashXX(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// HashFNV hashes data with FNV-1a 64.
func HashFNV(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}

// BusyLoop performs n rounds of a fixed mixing step. Its cost is linear in
// n, which makes it useful for ratio checks.
func BusyLoop(n uint64) uint64 {
	x := n | 1
	for i := uint64(0); i < n; i++ {
		x ^= x << 13
		x ^= x >> 7
		x ^= x << 17
	}
	return x
}
