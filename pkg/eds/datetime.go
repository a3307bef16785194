package eds

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	// MM-DD-YYYY
	datePattern = regexp.MustCompile(`^([0-1][0-9])-([0-3][0-9])-([0-9]{4})$`)

	// HH:MM followed by AM or PM, optionally separated by spaces.
	timePattern = regexp.MustCompile(`^([0-1][0-9]):([0-5][0-9]) *(AM|PM)$`)
)

var (
	errBadDate   = errors.New("date must be MM-DD-YYYY")
	errBadTime   = errors.New("time must be HH:MM followed by AM or PM")
	errNoInstant = errors.New("date and time do not form a calendar instant")
)

// Date is a calendar date as written in a data sheet.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// TimeOfDay is a 24-hour clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseDate parses MM-DD-YYYY. Month must be 1..12 and day 1..31; any
// four-digit year is accepted, including 0000.
func ParseDate(s string) (Date, error) {
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("%q: %w", s, errBadDate)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, fmt.Errorf("%q: %w", s, errBadDate)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// ParseTime parses HH:MMAM or HH:MMPM with an hour of 1..12 and converts it
// to 24-hour form: 12 AM is hour 0, 12 PM stays 12.
func ParseTime(s string) (TimeOfDay, error) {
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("%q: %w", s, errBadTime)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])

	if hour < 1 || hour > 12 {
		return TimeOfDay{}, fmt.Errorf("%q: %w", s, errBadTime)
	}
	switch {
	case m[3] == "AM" && hour == 12:
		hour = 0
	case m[3] == "PM" && hour != 12:
		hour += 12
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// CombineDateTime returns the UTC instant of d at t. Dates such as
// February 30 are rejected rather than normalized.
func CombineDateTime(d Date, t TimeOfDay) (time.Time, error) {
	ts := time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, time.UTC)
	if ts.Year() != d.Year || ts.Month() != d.Month || ts.Day() != d.Day {
		return time.Time{}, fmt.Errorf("%04d-%02d-%02d: %w", d.Year, d.Month, d.Day, errNoInstant)
	}
	return ts, nil
}
