package utils

import (
	"fmt"
	"time"
)

// DateLayout is the canonical day format stored on bookings.
const DateLayout = "2006-01-02"

// ParseDate validates a yyyy-MM-dd string. Dates are compared as strings
// everywhere else, so the input must already be canonical.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd", s)
	}
	if t.Format(DateLayout) != s {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd", s)
	}
	return t, nil
}

// Today returns the current date in loc as yyyy-MM-dd.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}
