package dto

// StudentPayload is the wire shape for signup, waiting-list and teacher-entry
// submissions. Times are display strings; the service converts them to
// minutes at the boundary.
type StudentPayload struct {
	StudentName  string `json:"studentName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Age          int    `json:"age" validate:"required"`
	LessonDay    string `json:"lessonDay" validate:"required"`
	LessonTime   string `json:"lessonTime" validate:"required"` // "HH:MM" or "H:MM AM/PM"
	Duration     string `json:"duration" validate:"required"`   // "HH:MM:SS"
	SkillLevel   string `json:"skillLevel" validate:"required"`
	StartDate    string `json:"startDate" validate:"required"` // "YYYY-MM-DD"
	Notes        string `json:"notes"`
}

// StudentView is the outward shape of a student entry, with clock fields
// rendered back into the display formats the original forms exchange.
type StudentView struct {
	ID           string  `json:"id"`
	StudentName  string  `json:"studentName"`
	PhoneNumber  string  `json:"phoneNumber"`
	EmailAddress string  `json:"emailAddress"`
	Age          int     `json:"age"`
	LessonDay    string  `json:"lessonDay"`
	LessonTime   string  `json:"lessonTime"` // "HH:MM"
	Duration     string  `json:"duration"`   // "HH:MM:SS"
	SkillLevel   string  `json:"skillLevel"`
	StartDate    string  `json:"startDate"` // "YYYY-MM-DD"
	MinutelyRate float64 `json:"minutelyRate,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// UpdateStudentRequest carries partial edits to a roster entry.
type UpdateStudentRequest struct {
	StudentName *string `json:"studentName,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Age         *int    `json:"age,omitempty"`
	LessonDay   *string `json:"lessonDay,omitempty"`
	LessonTime  *string `json:"lessonTime,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	SkillLevel  *string `json:"skillLevel,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// PromoteRequest names the queue a student is promoted from.
type PromoteRequest struct {
	From string `json:"from" validate:"required,oneof=waitingList signups"`
}

// MoveRequest moves an entry between the signups queue and the waiting list.
type MoveRequest struct {
	From string `json:"from" validate:"required,oneof=waitingList signups"`
	To   string `json:"to" validate:"required,oneof=waitingList signups"`
}
