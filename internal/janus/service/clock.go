package service

import "time"

// Clock returns the current time. Services default to the wall clock.
type Clock func() time.Time

// now reads c in UTC at microsecond precision, the finest resolution every
// store driver keeps.
func (c Clock) now() time.Time {
	var t time.Time
	if c == nil {
		t = time.Now()
	} else {
		t = c()
	}
	return t.UTC().Truncate(time.Microsecond)
}
