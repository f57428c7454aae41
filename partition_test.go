package parsort

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPartitioned(t *testing.T, data []int64, r Range, p int) {
	t.Helper()
	require.GreaterOrEqual(t, p, r.Start)
	require.Less(t, p, r.End)
	pivot := data[p]
	for i := r.Start; i < p; i++ {
		assert.Less(t, data[i], pivot, "index %d left of pivot %d", i, p)
	}
	for i := p + 1; i < r.End; i++ {
		assert.GreaterOrEqual(t, data[i], pivot, "index %d right of pivot %d", i, p)
	}
}

func TestCompare(t *testing.T) {
	assert.Negative(t, Compare(-5, 3))
	assert.Positive(t, Compare(3, -5))
	assert.Zero(t, Compare(7, 7))
	assert.Negative(t, Compare(-1<<63, 1<<63-1))
}

func TestSwap(t *testing.T) {
	data := []int64{1, 2, 3}
	Swap(data, 0, 2)
	assert.Equal(t, []int64{3, 2, 1}, data)
	Swap(data, 1, 1)
	assert.Equal(t, []int64{3, 2, 1}, data)
}

func TestPartition_MiddlePivot(t *testing.T) {
	data := []int64{5, 3, 3, 1, 4}
	// Middle index 2 holds 3.
	p := Partition(data, Range{Start: 0, End: 5})
	assert.Equal(t, int64(3), data[p])
	assert.Equal(t, 1, p)
	assertPartitioned(t, data, Range{Start: 0, End: 5}, p)
}

func TestPartition_TwoRecords(t *testing.T) {
	data := []int64{2, 1}
	p := Partition(data, Range{Start: 0, End: 2})
	assert.Equal(t, 0, p)
	assert.Equal(t, []int64{1, 2}, data)

	data = []int64{1, 2}
	p = Partition(data, Range{Start: 0, End: 2})
	assert.Equal(t, 1, p)
	assert.Equal(t, []int64{1, 2}, data)
}

func TestPartition_AllEqual(t *testing.T) {
	data := []int64{7, 7, 7, 7, 7, 7}
	p := Partition(data, Range{Start: 0, End: len(data)})
	// Equal values go right, so the pivot lands first.
	assert.Equal(t, 0, p)
	assertPartitioned(t, data, Range{Start: 0, End: len(data)}, p)
}

func TestPartition_SubRangeLeavesOutsideUntouched(t *testing.T) {
	data := []int64{100, -100, 9, 8, 7, 6, 5, 100, -100}
	r := Range{Start: 2, End: 7}
	p := Partition(data, r)
	assertPartitioned(t, data, r, p)
	assert.Equal(t, []int64{100, -100}, data[:2])
	assert.Equal(t, []int64{100, -100}, data[7:])
}

func TestPartition_Random(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	for trial := range 200 {
		n := 2 + rng.IntN(64)
		data := make([]int64, n)
		for i := range data {
			// Narrow domain to force duplicates on most trials.
			data[i] = rng.Int64N(int64(1 + trial%20))
		}
		before := slices.Clone(data)
		r := Range{Start: 0, End: n}

		p := Partition(data, r)
		assertPartitioned(t, data, r, p)

		slices.Sort(before)
		after := slices.Clone(data)
		slices.Sort(after)
		assert.Equal(t, before, after)
	}
}

func TestPartition_PanicsOnShortRange(t *testing.T) {
	assert.Panics(t, func() { Partition([]int64{1}, Range{Start: 0, End: 1}) })
	assert.Panics(t, func() { Partition(nil, Range{}) })
}

func TestRange(t *testing.T) {
	r := Range{Start: 2, End: 5}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "[2, 5)", r.String())
	assert.NoError(t, r.Validate(5))
	assert.NoError(t, Range{}.Validate(0))

	assert.ErrorIs(t, r.Validate(4), ErrInvalidRange)
	assert.ErrorIs(t, Range{Start: 3, End: 2}.Validate(10), ErrInvalidRange)
	assert.ErrorIs(t, Range{Start: -1, End: 2}.Validate(10), ErrInvalidRange)
}
