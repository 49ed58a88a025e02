package engine

import "time"

// dayStart maps a wall-clock instant to the canonical start of its
// calendar day: shift into the configured zone, subtract the day-start
// hour, truncate. The result is a UTC midnight so day subtraction is
// exact regardless of DST in the display zone.
func (e *Engine) dayStart(t time.Time) time.Time {
	lt := t.In(e.params.Location).Add(-time.Duration(e.params.DayStartHour) * time.Hour)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole calendar days from a to b. Negative when
// b is before a, which callers treat as a clock anomaly and skip.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func dayKey(dayStart time.Time) string {
	return dayStart.Format("2006-01-02")
}

func dayLabel(dayStart time.Time) string {
	return dayStart.Format("Jan 2")
}
