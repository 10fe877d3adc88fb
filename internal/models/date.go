package models

import (
	"fmt"
	"time"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar day in ISO "YYYY-MM-DD" form. Time of day and
// timezone are deliberately absent: a meal is planned for a day, not an
// instant. Lexicographic comparison of two Dates is chronological.
type Date string

// ParseDate validates s as an ISO calendar date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// Time returns the date at midnight UTC. Panics are avoided by
// construction: a Date produced by ParseDate or AddDays always parses.
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(dateLayout))
}

// DaysSince returns the number of whole days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.Time().Sub(other.Time()).Hours() / 24)
}

// Within reports whether d falls in the closed interval [start, end].
func (d Date) Within(start, end Date) bool {
	return d >= start && d <= end
}
