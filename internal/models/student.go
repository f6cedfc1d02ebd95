package models

import "time"

// Collection identifies which enrollment queue a student entry belongs to.
// The three collections are disjoint: an email address appears in at most one
// of them at any time.
type Collection string

const (
	CollectionRoster      Collection = "ROSTER"
	CollectionWaitingList Collection = "WAITING_LIST"
	CollectionSignups     Collection = "SIGNUPS"
)

// Valid reports whether c is one of the three known collections.
func (c Collection) Valid() bool {
	switch c {
	case CollectionRoster, CollectionWaitingList, CollectionSignups:
		return true
	}
	return false
}

// Weekday is a lesson day name as stored ("Monday".."Sunday").
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// WeekOrder maps day names to their position for schedule sorting.
var WeekOrder = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3,
	Friday: 4, Saturday: 5, Sunday: 6,
}

// Valid reports whether w names a day of the week.
func (w Weekday) Valid() bool {
	_, ok := WeekOrder[w]
	return ok
}

// StudentEntry is the booking unit shared by the roster, the waiting list and
// the signups queue. Clock values are minutes since midnight; Position is an
// explicit insertion sequence so waiting-list ordering does not depend on
// storage order.
type StudentEntry struct {
	ID                string     `db:"id" json:"id"`
	Collection        Collection `db:"collection" json:"-"`
	Position          int64      `db:"position" json:"-"`
	StudentName       string     `db:"student_name" json:"studentName"`
	PhoneNumber       string     `db:"phone_number" json:"phoneNumber"`
	EmailAddress      string     `db:"email_address" json:"emailAddress"`
	Age               int        `db:"age" json:"age"`
	LessonDay         Weekday    `db:"lesson_day" json:"lessonDay"`
	LessonTimeMinutes int        `db:"lesson_time_minutes" json:"-"`
	DurationMinutes   int        `db:"duration_minutes" json:"-"`
	SkillLevel        string     `db:"skill_level" json:"skillLevel"`
	StartDate         time.Time  `db:"start_date" json:"startDate"`
	MinutelyRate      float64    `db:"minutely_rate" json:"minutelyRate"`
	Notes             *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
}

// LessonEnd returns the minute of day at which the lesson finishes.
func (s StudentEntry) LessonEnd() int {
	return s.LessonTimeMinutes + s.DurationMinutes
}
