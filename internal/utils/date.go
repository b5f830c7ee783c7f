package utils

import "time"

// DateFormat is the wire format for all dates handled by the application.
const DateFormat = "2006-01-02"

// Day truncates t to midnight UTC. Every date that enters the domain goes
// through this so that comparisons happen at day granularity and are immune
// to time-of-day and timezone drift.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a day-granular UTC time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate renders t in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// AddMonths advances t by n calendar months, clamping to the last day of the
// target month (Jan 31 + 1 month = Feb 28, not Mar 3). Go's AddDate would
// normalize the overflow instead, which shifts recurring monthly schedules.
func AddMonths(t time.Time, n int) time.Time {
	day := t.Day()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := MonthEnd(first).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}
