package testutil

import (
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Records returns n records drawn from the full int64 range.
func (r *RNG) Records(n int) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.rand.Uint64())
	}
	return out
}

// RecordsIn returns n records drawn uniformly from [lo, hi).
// A narrow range yields many duplicates.
func (r *RNG) RecordsIn(n int, lo, hi int64) []int64 {
	if hi <= lo {
		panic("testutil: empty record range")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = lo + r.rand.Int63n(hi-lo)
	}
	return out
}

// ZipfRecords returns n records in [0, imax] following Zipf's law with skew s > 1.
// Small values repeat heavily, which stresses partitioning of equal keys.
func (r *RNG) ZipfRecords(n int, s float64, imax uint64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	z := rand.NewZipf(r.rand, s, 1, imax)
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(z.Uint64())
	}
	return out
}

// Shuffle permutes data in place.
func (r *RNG) Shuffle(data []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })
}

// Distribution names an input shape for sort tests.
type Distribution string

// Input shapes.
const (
	Uniform    Distribution = "uniform"
	FewUnique  Distribution = "few-unique"
	Zipf       Distribution = "zipf"
	Ascending  Distribution = "ascending"
	Descending Distribution = "descending"
	OrganPipe  Distribution = "organ-pipe"
	AllEqual   Distribution = "all-equal"
)

// Distributions lists every input shape.
var Distributions = []Distribution{Uniform, FewUnique, Zipf, Ascending, Descending, OrganPipe, AllEqual}

// Generate returns n records shaped like d.
func (r *RNG) Generate(d Distribution, n int) []int64 {
	switch d {
	case Uniform:
		return r.Records(n)
	case FewUnique:
		return r.RecordsIn(n, -4, 4)
	case Zipf:
		return r.ZipfRecords(n, 1.5, 1<<20)
	case Ascending:
		out := r.Records(n)
		slices.Sort(out)
		return out
	case Descending:
		out := r.Records(n)
		slices.Sort(out)
		slices.Reverse(out)
		return out
	case OrganPipe:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(min(i, n-1-i))
		}
		return out
	case AllEqual:
		return make([]int64, n)
	default:
		panic("testutil: unknown distribution " + string(d))
	}
}
