package activity

import "time"

// Window is a stop's optional date range. Either bound may be nil, in
// which case only the remaining bound (if any) constrains a timestamp.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether ts is an allowed scheduled time for the
// window. The start bound is midnight of the start date, the end bound
// is 23:59 of the end date, both inclusive. Bounds are interpreted in
// the timestamp's own location.
func (w Window) Contains(ts time.Time) bool {
	if w.Start != nil {
		lower := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, ts.Location())
		if ts.Before(lower) {
			return false
		}
	}
	if w.End != nil {
		upper := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 23, 59, 0, 0, ts.Location())
		if ts.After(upper) {
			return false
		}
	}
	return true
}
