package core

import "time"

// Date is a calendar date in ISO 8601 YYYY-MM-DD form. The zero-padded
// fixed-width format makes plain string comparison a correct chronological
// ordering, which the filter and trend code rely on.
type Date string

const dateLayout = "2006-01-02"

// NewDate builds a Date from a time value, truncating to the calendar day.
func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Validate() error {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return ErrInvalidDate
	}
	// Round-trip to reject inputs that parse but are not in canonical
	// zero-padded form; ordering depends on the fixed width.
	if t.Format(dateLayout) != string(d) {
		return ErrInvalidDate
	}
	return nil
}

// YearMonth returns the YYYY-MM slice of the date.
func (d Date) YearMonth() string {
	if len(d) < 7 {
		return string(d)
	}
	return string(d[:7])
}

// Before reports whether d sorts strictly before o.
func (d Date) Before(o Date) bool { return d < o }

// After reports whether d sorts strictly after o.
func (d Date) After(o Date) bool { return d > o }
