// Package interval provides overlap testing and duration arithmetic for
// half-open time intervals [start, end).
package interval

import "time"

// Overlaps reports whether [start1, end1) and [start2, end2) share any time.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// Hours returns the duration between start and end in fractional hours.
func Hours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// Minutes returns the duration between start and end in fractional minutes.
func Minutes(start, end time.Time) float64 {
	return end.Sub(start).Minutes()
}

// Later returns the later of two instants.
func Later(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
