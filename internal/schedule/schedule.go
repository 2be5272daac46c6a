// Package schedule detects time-window overlaps between study sessions.
package schedule

import "time"

// Interval is a half-open time window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the interval is non-empty.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether a and b share any instant.
// Touching windows (a.End == b.Start) do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// Conflicts returns the indexes of existing intervals that overlap candidate,
// in input order.
func Conflicts(candidate Interval, existing []Interval) []int {
	var idx []int
	for i, e := range existing {
		if Overlaps(candidate, e) {
			idx = append(idx, i)
		}
	}
	return idx
}
