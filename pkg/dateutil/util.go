package dateutil

import "time"

// BeginningOfDay truncates t to midnight in its own location. Daily spin and
// win counters are bucketed by this value.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// NextDay returns the midnight following t, the exclusive upper bound of the
// daily bucket containing t.
func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall into the same daily bucket.
func SameDay(a, b time.Time) bool {
	return BeginningOfDay(a).Equal(BeginningOfDay(b))
}
