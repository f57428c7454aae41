package parsort

import "fmt"

// Range is a half-open index interval [Start, End) over a record slice.
type Range struct {
	Start int
	End   int
}

// Len returns the number of records in the range.
func (r Range) Len() int { return r.End - r.Start }

// Validate reports ErrInvalidRange unless 0 <= Start <= End <= n.
func (r Range) Validate(n int) error {
	if r.Start < 0 || r.End < r.Start || r.End > n {
		return fmt.Errorf("%w: %s over %d records", ErrInvalidRange, r, n)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
