package models

// WorkingHours is the teaching window for one day of the week. Times are
// minutes since midnight with StartMinutes < EndMinutes. Consumers assume at
// most one row per day.
type WorkingHours struct {
	ID           string  `db:"id" json:"id"`
	DayOfWeek    Weekday `db:"day_of_week" json:"dayOfWeek"`
	StartMinutes int     `db:"start_minutes" json:"-"`
	EndMinutes   int     `db:"end_minutes" json:"-"`
}

// Span returns the window length in minutes.
func (w WorkingHours) Span() int {
	return w.EndMinutes - w.StartMinutes
}
