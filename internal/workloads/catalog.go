package workloads

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zebiner/benchkit/internal/harness"
)

// ErrUnknownPair is returned for a comparison pair that is not in the
// catalog.
var ErrUnknownPair = errors.New("unknown comparison pair")

// Workload is a named benchmark case with its built-in input.
type Workload struct {
	Name        string
	Description string
	Run         harness.CaseFunc
}

// Pair names two workloads worth comparing.
type Pair struct {
	Name   string
	First  string
	Second string
}

const (
	sumInput    = 1_000
	fibInput    = 20
	hashPayload = 4 << 10
	busyRounds  = 1_000
)

// Catalog returns the built-in workloads in a stable order.
func Catalog() []Workload {
	payload := make([]byte, hashPayload)
	for i := range payload {
		payload[i] = byte(i * 31)
	}
	search := SearchInput{
		Haystack: strings.Repeat("abcdefghij", 100) + "needle",
		Needle:   "needle",
	}

	return []Workload{
		{Name: "sum-loop", Description: fmt.Sprintf("sum 1..%d with a loop", sumInput), Run: harness.CaseWithArg(SumLoop, uint64(sumInput))},
		{Name: "sum-formula", Description: fmt.Sprintf("sum 1..%d in closed form", sumInput), Run: harness.CaseWithArg(SumFormula, uint64(sumInput))},
		{Name: "fib-iterative", Description: fmt.Sprintf("fibonacci(%d) iteratively", fibInput), Run: harness.CaseWithArg(FibIterative, uint64(fibInput))},
		{Name: "fib-recursive", Description: fmt.Sprintf("fibonacci(%d) recursively", fibInput), Run: harness.CaseWithArg(FibRecursive, uint64(fibInput))},
		{Name: "contains-naive", Description: "substring search, byte by byte", Run: harness.CaseWithArg(ContainsNaive, search)},
		{Name: "contains-stdlib", Description: "substring search, strings.Contains", Run: harness.CaseWithArg(ContainsStdlib, search)},
		{Name: "hash-xxhash", Description: fmt.Sprintf("xxhash64 over %d bytes", hashPayload), Run: harness.CaseSliceOp(HashXX, payload)},
		{Name: "hash-fnv", Description: fmt.Sprintf("fnv-1a 64 over %d bytes", hashPayload), Run: harness.CaseSliceOp(HashFNV, payload)},
		{Name: "busy-loop", Description: fmt.Sprintf("%d xorshift rounds", busyRounds), Run: harness.CaseWithArg(BusyLoop, uint64(busyRounds))},
		{Name: "busy-loop-2x", Description: fmt.Sprintf("%d xorshift rounds", 2*busyRounds), Run: harness.CaseWithArg(BusyLoop, uint64(2*busyRounds))},
	}
}

// Pairs returns the built-in comparisons sorted by name.
func Pairs() []Pair {
	pairs := []Pair{
		{Name: "sum", First: "sum-formula", Second: "sum-loop"},
		{Name: "fib", First: "fib-iterative", Second: "fib-recursive"},
		{Name: "contains", First: "contains-stdlib", Second: "contains-naive"},
		{Name: "hash", First: "hash-xxhash", Second: "hash-fnv"},
		{Name: "busy", First: "busy-loop", Second: "busy-loop-2x"},
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	return pairs
}

// LookupPair finds a comparison pair by name.
func LookupPair(name string) (Pair, error) {
	for _, p := range Pairs() {
		if p.Name == name {
			return p, nil
		}
	}
	return Pair{}, fmt.Errorf("%w: %s", ErrUnknownPair, name)
}

// NewSuite registers every catalog workload on a suite.
func NewSuite(opts ...harness.SuiteOption) (*harness.Suite, error) {
	suite := harness.NewSuite(opts...)
	for _, w := range Catalog() {
		if err := suite.Add(w.Name, w.Run); err != nil {
			return nil, err
		}
	}
	return suite, nil
}
