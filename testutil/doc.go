// Package testutil provides testing utilities for parsort.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded, thread-safe generators for record slices in the
// shapes that matter to quicksort: uniform, heavy duplicates, presorted
// and adversarial layouts.
//
//	rng := testutil.NewRNG(seed)
//	data := rng.Generate(testutil.Zipf, 10_000)
//	for _, d := range testutil.Distributions { ... }
package testutil
