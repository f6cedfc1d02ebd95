package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Enrollment state-machine errors. Each duplicate-state condition gets its own
// code so the caller can render a specific message.
var (
	ErrAlreadyEnrolled      = New("ALREADY_ENROLLED", http.StatusConflict, "student is already enrolled")
	ErrAlreadySignedUp      = New("ALREADY_SIGNED_UP", http.StatusConflict, "student is already signed up")
	ErrAlreadyOnWaitingList = New("ALREADY_ON_WAITING_LIST", http.StatusConflict, "student is already on the waiting list")
	ErrNoSpotsAvailable     = New("NO_SPOTS_AVAILABLE", http.StatusConflict, "no spots are currently available")
	ErrWaitingListFull      = New("WAITING_LIST_FULL", http.StatusConflict, "waiting list is currently full")
	ErrBelowMinimumAge      = New("BELOW_MINIMUM_AGE", http.StatusBadRequest, "student does not meet the minimum age of 6 to enroll")
	ErrInvalidLessonTime    = New("INVALID_LESSON_TIME", http.StatusBadRequest, "lesson time must be between 9 AM and 6 PM")
	ErrMoveIncomplete       = New("MOVE_INCOMPLETE", http.StatusConflict, "move could not be completed; record remains in its source queue")
	ErrNoWorkingHours       = New("NO_WORKING_HOURS", http.StatusBadRequest, "no working hours configured")
	ErrNoSlot               = New("NO_SLOT", http.StatusBadRequest, "no available time slot for the requested duration on this day")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
