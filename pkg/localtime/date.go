package localtime

import "time"

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// DateOf returns the calendar day of t's wall clock as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayNumber returns the count of days since 1970-01-01 for t's calendar day.
func DayNumber(t time.Time) int {
	return int(DateOf(t).Unix() / secondsPerDay)
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t's calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
