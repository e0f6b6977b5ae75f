// Package slot finds free time between occupied ranges on a single day. The
// optimizer and the recovery advisor share the same scan so that they agree
// on what counts as free.
package slot

import (
	"slices"
	"time"
)

// Range is a half-open occupied interval [Start, End).
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the length of the range.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Overlaps reports whether r and o share any time.
func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// Sort orders ranges by start, then end.
func Sort(ranges []Range) {
	slices.SortStableFunc(ranges, func(a, b Range) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}

		return a.End.Compare(b.End)
	})
}

// Insert adds r into a sorted list and keeps it sorted.
func Insert(ranges []Range, r Range) []Range {
	i, _ := slices.BinarySearchFunc(ranges, r, func(a, b Range) int {
		return a.Start.Compare(b.Start)
	})

	return slices.Insert(ranges, i, r)
}

// scan walks sorted ranges with a cursor that starts at from and visits each
// idle span before until in chronological order. Ranges are not required to
// be disjoint. Visiting stops when visit returns false.
func scan(ranges []Range, from, until time.Time, visit func(gap Range) bool) {
	cursor := from

	for _, r := range ranges {
		if !cursor.Before(until) {
			return
		}

		if r.Start.After(cursor) {
			end := r.Start
			if end.After(until) {
				end = until
			}

			if !visit(Range{Start: cursor, End: end}) {
				return
			}
		}

		if r.End.After(cursor) {
			cursor = r.End
		}
	}

	if cursor.Before(until) {
		visit(Range{Start: cursor, End: until})
	}
}

// EarliestFit returns the first start time in [from, until) where an interval
// of length d fits without touching any range. It is earliest-fit, not
// best-fit: the first gap that is long enough wins.
func EarliestFit(
	ranges []Range,
	from, until time.Time,
	d time.Duration,
) (time.Time, bool) {
	var (
		found time.Time
		ok    bool
	)

	scan(ranges, from, until, func(gap Range) bool {
		if gap.Duration() >= d {
			found, ok = gap.Start, true
			return false
		}

		return true
	})

	return found, ok
}

// Gaps returns every idle span in [from, until) that lasts at least min.
func Gaps(ranges []Range, from, until time.Time, min time.Duration) []Range {
	var gaps []Range

	scan(ranges, from, until, func(gap Range) bool {
		if gap.Duration() >= min && gap.Duration() > 0 {
			gaps = append(gaps, gap)
		}

		return true
	})

	return gaps
}

// LastEnd returns the latest end time among ranges, or the zero time.
func LastEnd(ranges []Range) time.Time {
	var last time.Time

	for _, r := range ranges {
		if r.End.After(last) {
			last = r.End
		}
	}

	return last
}

// GapPenalty charges each maximal idle span between from and the end of the
// last range. A span of N whole hours costs 2N-1; spans under an hour are free.
// Time after the last range is never charged.
func GapPenalty(ranges []Range, from time.Time) int {
	last := LastEnd(ranges)
	if !last.After(from) {
		return 0
	}

	var penalty int

	for _, gap := range Gaps(ranges, from, last, time.Hour) {
		n := int(gap.Duration() / time.Hour)
		penalty += 2*n - 1
	}

	return penalty
}
