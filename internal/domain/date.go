package domain

import "time"

// Calendar-date keys are "YYYY-MM-DD" strings supplied by callers.
// The engine never consults wall-clock time zones; a "day" is whatever
// date key the caller hands it.

// ParseDay parses a calendar-date key.
func ParseDay(key string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, key)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DayKey formats a time as a calendar-date key.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// AddDays returns the date key n calendar days after the given key.
// The key must be valid; invalid keys return the empty string.
func AddDays(key string, n int) string {
	t, err := ParseDay(key)
	if err != nil {
		return ""
	}
	return DayKey(t.AddDate(0, 0, n))
}

// DayDiff returns the whole-day difference today-last between two date
// keys. Negative values mean today precedes last (clock skew).
func DayDiff(today, last string) (int, error) {
	a, err := ParseDay(today)
	if err != nil {
		return 0, err
	}
	b, err := ParseDay(last)
	if err != nil {
		return 0, err
	}
	return int(a.Sub(b) / (24 * time.Hour)), nil
}
