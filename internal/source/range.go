package source

import "fmt"

// Range is a half-open token index range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Clamp limits the range to [0, n).
func (r Range) Clamp(n int) Range {
	r.Start = min(max(r.Start, 0), n)
	r.End = min(max(r.End, r.Start), n)
	return r
}

// Inserted adjusts the range for count tokens inserted at index.
// Insertions at the end boundary extend the range.
func (r Range) Inserted(index, count int) Range {
	if index < r.Start {
		r.Start += count
	}
	if index <= r.End {
		r.End += count
	}
	return r
}

// Removed adjusts the range for the tokens in [start, end) being removed.
func (r Range) Removed(start, end int) Range {
	shift := func(i int) int {
		switch {
		case i >= end:
			return i - (end - start)
		case i > start:
			return start
		}
		return i
	}
	r.Start = shift(r.Start)
	r.End = shift(r.End)
	return r
}
