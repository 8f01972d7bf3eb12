// Package ledger defines the shared domain contract between the client and
// the budget service: the month selection, the category vocabulary, and
// amount/form validation.
package ledger

import (
	"fmt"
	"time"
)

// Month is a calendar year/month pair. Month is 1-12.
type Month struct {
	Year  int
	Month int
}

// CurrentMonth returns the month containing the local current date.
func CurrentMonth() Month {
	now := time.Now()
	return Month{Year: now.Year(), Month: int(now.Month())}
}

// Shift advances or retreats the month by delta months, rolling the year
// over in either direction. Arbitrarily distant months are allowed.
func (m Month) Shift(delta int) Month {
	total := m.Year*12 + (m.Month - 1) + delta
	year := total / 12
	month := total%12 + 1
	if total < 0 && total%12 != 0 {
		year--
		month += 12
	}
	return Month{Year: year, Month: month}
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// Label returns a human-readable form like "January 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", time.Month(m.Month).String(), m.Year)
}

// Contains reports whether the ISO date string (YYYY-MM-DD) falls in m.
func (m Month) Contains(date string) bool {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return t.Year() == m.Year && int(t.Month()) == m.Month
}

// Valid reports whether the pair denotes a real calendar month.
func (m Month) Valid() bool {
	return m.Year >= 1 && m.Month >= 1 && m.Month <= 12
}
