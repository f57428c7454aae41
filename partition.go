package parsort

// Compare orders records ascending: negative if a < b, positive if a > b,
// zero if they are equal.
func Compare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Swap exchanges data[i] and data[j].
func Swap(data []int64, i, j int) {
	data[i], data[j] = data[j], data[i]
}

// Partition rearranges data[r.Start:r.End] around the value found at the
// middle of the range and returns the index the pivot value ends up at.
//
// Afterwards every record left of the returned index is strictly less than
// the pivot and every record right of it is greater than or equal to it.
// r must hold at least two records.
func Partition(data []int64, r Range) int {
	n := r.Len()
	if n < 2 {
		panic("parsort: partition of fewer than two records")
	}

	mid := r.Start + n/2
	pivot := data[mid]

	// Stash the pivot at the end of the range.
	last := r.End - 1
	Swap(data, mid, last)

	left, right := r.Start, last-1
	for left <= right {
		if data[left] < pivot {
			left++
			continue
		}
		if data[right] >= pivot {
			right--
			continue
		}
		// data[left] belongs right of the pivot, data[right] belongs left.
		Swap(data, left, right)
	}

	// left is the first record of the upper partition.
	Swap(data, left, last)
	return left
}
