package dto

// WorkingHoursPayload creates or replaces the teaching window for a day.
type WorkingHoursPayload struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required"`
	StartTime string `json:"startTime" validate:"required"` // "HH:MM"
	EndTime   string `json:"endTime" validate:"required"`   // "HH:MM"
}

// WorkingHoursView is the outward shape of a working-hours row.
type WorkingHoursView struct {
	ID        string `json:"id"`
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	Display   string `json:"display"`   // "9 AM - 6 PM"
}

// ConfigurationItem is the outward shape of a configuration entry.
type ConfigurationItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// UpdateConfigurationRequest updates one configuration key.
type UpdateConfigurationRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=number decimal string"`
}
