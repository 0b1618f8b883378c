package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the ISO-8601 calendar date layout used on the wire.
const DateFormat = "2006-01-02"

// Date is a calendar date with day granularity. Expenses carry no
// time-of-day component.
type Date struct {
	t time.Time
}

// NewDate returns the normalized date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date like "2025-01-01".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// Today returns the current date in UTC.
func Today() Date {
	return NewDate(time.Now().UTC().Date())
}

// IsZero reports whether d is the zero date (i.e. was never set).
func (d Date) IsZero() bool { return d.t.IsZero() }

// After reports whether d is a later calendar day than x.
func (d Date) After(x Date) bool { return d.t.After(x.t) }

// Before reports whether d is an earlier calendar day than x.
func (d Date) Before(x Date) bool { return d.t.Before(x.t) }

func (d Date) String() string { return d.t.Format(DateFormat) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
