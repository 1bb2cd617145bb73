// Package kst provides calendar-day arithmetic in the fixed UTC+9 offset that
// all daily activity is bucketed by, independent of the server timezone.
package kst

import "time"

// Zone is a fixed +9h offset. It is a domain constant, not a loaded location:
// no daylight saving applies, and the host TZ must never influence bucketing.
var Zone = time.FixedZone("KST", 9*60*60)

// Date truncates an instant to midnight of the local calendar day it falls on.
func Date(value time.Time) time.Time {
	localized := value.In(Zone)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, Zone)
}

// DayBounds returns the UTC instants [start, end) enclosing the local
// calendar day that value falls on.
func DayBounds(value time.Time) (time.Time, time.Time) {
	start := Date(value)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// DayString formats the local calendar day of value as "YYYY-MM-DD".
func DayString(value time.Time) string {
	return value.In(Zone).Format("2006-01-02")
}

// ParseDayString interprets a "YYYY-MM-DD" string as local midnight.
func ParseDayString(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, Zone)
}

// SameDay reports whether two instants fall on the same local calendar day.
func SameDay(a time.Time, b time.Time) bool {
	return DayString(a) == DayString(b)
}
