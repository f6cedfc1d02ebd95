package dto

// AvailabilitySummary is the public capacity report for the signup page.
type AvailabilitySummary struct {
	Available                 bool `json:"available"`
	SpotsAvailable            int  `json:"spotsAvailable"`
	WaitingListAvailable      bool `json:"waitingListAvailable"`
	WaitingListSpotsAvailable int  `json:"waitingListSpotsAvailable"`
}

// WaitingListPositionRequest looks up a prospective student by email.
type WaitingListPositionRequest struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
}

// WaitingListPosition is a 1-indexed place in the FIFO waiting list.
type WaitingListPosition struct {
	Position int `json:"position"`
	Total    int `json:"total"`
}
