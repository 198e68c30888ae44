package types

import (
	"fmt"
	"time"
)

// Week is a calendar week starting on Sunday at midnight.
type Week time.Time

// WeekOf returns the week containing t, in t's location.
func WeekOf(t time.Time) Week {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return Week(start.AddDate(0, 0, -int(start.Weekday())))
}

// Start is Sunday 00:00 of the week.
func (w Week) Start() time.Time {
	return time.Time(w)
}

// End is the following Sunday 00:00. Ranges built from it are half-open.
func (w Week) End() time.Time {
	return time.Time(w).AddDate(0, 0, 7)
}

// Contains reports whether t falls into the week.
func (w Week) Contains(t time.Time) bool {
	return !t.Before(w.Start()) && t.Before(w.End())
}

// String returns "week of YYYY-MM-DD" using the first day of the week.
func (w Week) String() string {
	return fmt.Sprintf("week of %s", time.Time(w).Format(time.DateOnly))
}
