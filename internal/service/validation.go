package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
	"github.com/yunboheater/piano-studio-api/pkg/timeutil"
)

const startDateLayout = "2006-01-02"

// StudentPolicy is the studio's admission policy applied to every signup,
// waiting-list join and manual entry.
type StudentPolicy struct {
	MinAge           int
	MaxAge           int
	LessonWindowFrom int // minutes since midnight
	LessonWindowTo   int
}

// DefaultStudentPolicy mirrors the studio's published rules: students are at
// least 6, lessons run between 9 AM and 6 PM.
func DefaultStudentPolicy() StudentPolicy {
	return StudentPolicy{MinAge: 6, MaxAge: 120, LessonWindowFrom: 9 * 60, LessonWindowTo: 18 * 60}
}

// checkStudentPayload applies the policy rules that struct-tag validation
// cannot express. allowPastDates is only set for teacher manual entry.
func (p StudentPolicy) checkStudentPayload(payload dto.StudentPayload, allowPastDates bool) error {
	if err := p.checkPhoneNumber(payload.PhoneNumber); err != nil {
		return err
	}
	if err := p.checkAge(payload.Age); err != nil {
		return err
	}
	if !models.Weekday(payload.LessonDay).Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%q is not a day of the week", payload.LessonDay))
	}
	if err := p.checkLessonTime(payload.LessonTime); err != nil {
		return err
	}
	if timeutil.DurationToMinutes(payload.Duration) <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "lesson duration is required")
	}
	if !allowPastDates {
		if err := checkStartDate(payload.StartDate); err != nil {
			return err
		}
	}
	return nil
}

func (p StudentPolicy) checkPhoneNumber(phone string) error {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if len(digits) == 10 || (len(digits) == 11 && strings.HasPrefix(digits, "1")) {
		return nil
	}
	return appErrors.Clone(appErrors.ErrValidation, "please enter a valid phone number (10 digits, US format)")
}

func (p StudentPolicy) checkAge(age int) error {
	if age < p.MinAge {
		return appErrors.ErrBelowMinimumAge
	}
	if age > p.MaxAge {
		return appErrors.Clone(appErrors.ErrValidation, "please enter a valid age")
	}
	return nil
}

// checkLessonTime accepts 12-hour or 24-hour input and enforces the studio
// lesson window, inclusive at both ends.
func (p StudentPolicy) checkLessonTime(clock string) error {
	minutes := timeutil.ToMinutes(timeutil.To24Hour(clock))
	if minutes < p.LessonWindowFrom || minutes > p.LessonWindowTo {
		return appErrors.ErrInvalidLessonTime
	}
	return nil
}

func checkStartDate(raw string) error {
	day, err := time.Parse(startDateLayout, raw)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "preferred start date must be YYYY-MM-DD")
	}
	today := time.Now()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return appErrors.Clone(appErrors.ErrValidation, "preferred start date cannot be in the past")
	}
	return nil
}
