// utils/dates.go
package utils

import "time"

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DaysOld counts calendar days from then until now.
func DaysOld(then, now time.Time) int {
	return int(StartOfDay(now).Sub(StartOfDay(then.In(now.Location()))).Hours() / 24)
}

// CutoffDaysAgo is midnight, days calendar days before now.
func CutoffDaysAgo(now time.Time, days int) time.Time {
	return StartOfDay(now).AddDate(0, 0, -days)
}
