package dto

// SuggestionMode selects which of {day, time} the caller has already fixed.
type SuggestionMode string

const (
	SuggestionModeBoth SuggestionMode = "both"
	SuggestionModeDay  SuggestionMode = "day"
	SuggestionModeTime SuggestionMode = "time"
)

// Suggestion is one candidate lesson placement. Day and Time are both
// optional depending on the mode; Time is rendered in 12-hour display form.
type Suggestion struct {
	Day  string `json:"day,omitempty"`
	Time string `json:"time,omitempty"`
}

// SuggestTimeRequest is the teacher-console first-fit query payload.
type SuggestTimeRequest struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required"`
	Duration  string `json:"duration" validate:"required"`
}

// SuggestTimeResponse carries the first feasible start time as "HH:MM".
type SuggestTimeResponse struct {
	SuggestedTime string `json:"suggestedTime"`
}
