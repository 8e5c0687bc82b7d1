// Package daterange resolves named date presets ("Last 30 Days", "Year to
// Date", ...) into concrete calendar ranges.
//
// All arithmetic is calendar based. Subtracting 7 days always lands on the
// same wall-clock date a week earlier regardless of DST transitions, because
// Date carries no time of day.
package daterange

import (
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // lenient: accepts 2025-7-1

// DateFormat is the ISO-8601 calendar date layout used for display and I/O.
const DateFormat = "2006-01-02"

// Date is a calendar date with day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date; out-of-range months and days roll over the
// same way time.Date does.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t.Year(), t.Month(), t.Day()}
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date { return New(t.Date()) }

// Today returns the current local date.
func Today() Date { return FromTime(time.Now()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year of d.
func (d Date) Year() int { return d.y }

// Month returns the month of d.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month of d.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date { return New(d.y, d.m, d.d+n) }

// AddMonths returns d shifted by n calendar months. Day overflow rolls into
// the following month (Aug 31 - 6 months = Mar 3 in a common year).
func (d Date) AddMonths(n int) Date { return New(d.y, d.m+time.Month(n), d.d) }

// AddYears returns d shifted by n years (Feb 29 - 1 year = Mar 1).
func (d Date) AddYears(n int) Date { return New(d.y+n, d.m, d.d) }

// StartOfYear returns January 1 of d's year.
func (d Date) StartOfYear() Date { return New(d.y, time.January, 1) }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Parse parses a Date. It is lenient and accepts "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, err)
	}
	return FromTime(on), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalText implements encoding.TextMarshaler (used by json and yaml).
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
