package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunboheater/piano-studio-api/internal/dto"
	"github.com/yunboheater/piano-studio-api/internal/models"
	appErrors "github.com/yunboheater/piano-studio-api/pkg/errors"
)

type fakeHours struct {
	rows []models.WorkingHours
}

func (f fakeHours) List(context.Context) ([]models.WorkingHours, error) {
	return f.rows, nil
}

func (f fakeHours) FindByDay(_ context.Context, day models.Weekday) (*models.WorkingHours, error) {
	for i := range f.rows {
		if f.rows[i].DayOfWeek == day {
			return &f.rows[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func newTestAvailability(hours fakeHours, roster *fakeStudentStore) *AvailabilityService {
	return NewAvailabilityService(hours, roster, nil, AvailabilityConfig{Limit: 5, Floor: 3}, nil)
}

func TestSuggestTimeAroundBooking(t *testing.T) {
	hours := fakeHours{rows: []models.WorkingHours{
		{ID: "mon", DayOfWeek: models.Monday, StartMinutes: 9 * 60, EndMinutes: 12 * 60},
	}}
	roster := &fakeStudentStore{entries: []*models.StudentEntry{
		{
			ID: "r1", Collection: models.CollectionRoster, LessonDay: models.Monday,
			LessonTimeMinutes: 10 * 60, DurationMinutes: 60,
		},
	}}
	svc := newTestAvailability(hours, roster)

	got, err := svc.Suggest(context.Background(), "00:30:00", dto.SuggestionModeTime, "Monday")
	require.NoError(t, err)

	times := make([]string, 0, len(got))
	for _, s := range got {
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{"9:00 AM", "9:15 AM", "9:30 AM", "11:00 AM", "11:15 AM"}, times)
}

func TestSuggestTimeFallsBackToWorkStart(t *testing.T) {
	hours := fakeHours{rows: []models.WorkingHours{
		{ID: "mon", DayOfWeek: models.Monday, StartMinutes: 9 * 60, EndMinutes: 10 * 60},
	}}
	svc := newTestAvailability(hours, &fakeStudentStore{})

	got, err := svc.Suggest(context.Background(), "01:30:00", dto.SuggestionModeTime, "Monday")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "9:00 AM", got[0].Time)
}

func TestSuggestTimeUnknownDay(t *testing.T) {
	hours := fakeHours{rows: []models.WorkingHours{
		{ID: "mon", DayOfWeek: models.Monday, StartMinutes: 9 * 60, EndMinutes: 17 * 60},
	}}
	svc := newTestAvailability(hours, &fakeStudentStore{})

	_, err := svc.Suggest(context.Background(), "00:30:00", dto.SuggestionModeTime, "Tuesday")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNoWorkingHours.Code, appErr.Code)
}

func TestSuggestDayListsConfiguredDays(t *testing.T) {
	hours := fakeHours{rows: []models.WorkingHours{
		{ID: "mon", DayOfWeek: models.Monday, StartMinutes: 9 * 60, EndMinutes: 17 * 60},
		{ID: "wed", DayOfWeek: models.Wednesday, StartMinutes: 9 * 60, EndMinutes: 17 * 60},
	}}
	svc := newTestAvailability(hours, &fakeStudentStore{})

	got, err := svc.Suggest(context.Background(), "00:30:00", dto.SuggestionModeDay, "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Monday", got[0].Day)
	assert.Equal(t, "Wednesday", got[1].Day)
}

func TestSuggestBothOrdersByStartAndBackfills(t *testing.T) {
	hours := fakeHours{rows: []models.WorkingHours{
		{ID: "mon", DayOfWeek: models.Monday, StartMinutes: 9 * 60, EndMinutes: 18 * 60},
		{ID: "wed", DayOfWeek: models.Wednesday, StartMinutes: 8 * 60, EndMinutes: 9 * 60},
		{ID: "tue", DayOfWeek: models.Tuesday, StartMinutes: 10 * 60, EndMinutes: 11 * 60},
	}}
	svc := newTestAvailability(hours, &fakeStudentStore{})

	got, err := svc.Suggest(context.Background(), "01:30:00", dto.SuggestionModeBoth, "")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, dto.Suggestion{Day: "Monday", Time: "9:00 AM"}, got[0])
	assert.Equal(t, dto.Suggestion{Day: "Wednesday", Time: "8:00 AM"}, got[1])
	assert.Equal(t, dto.Suggestion{Day: "Tuesday", Time: "10:00 AM"}, got[2])
}

func TestSuggestWithoutWorkingHours(t *testing.T) {
	svc := newTestAvailability(fakeHours{}, &fakeStudentStore{})

	_, err := svc.Suggest(context.Background(), "00:30:00", dto.SuggestionModeBoth, "")
	assert.ErrorIs(t, err, appErrors.ErrNoWorkingHours)
}

func TestSuggestRequiresDuration(t *testing.T) {
	svc := newTestAvailability(fakeHours{}, &fakeStudentStore{})

	_, err := svc.Suggest(context.Background(), "", dto.SuggestionModeBoth, "")
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestFirstFitFindsEarliestGap(t *testing.T) {
	hours := fakeHours{rows: []models.WorkingHours{
		{ID: "mon", DayOfWeek: models.Monday, StartMinutes: 9 * 60, EndMinutes: 12 * 60},
	}}
	roster := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "a", Collection: models.CollectionRoster, LessonDay: models.Monday, LessonTimeMinutes: 9 * 60, DurationMinutes: 30},
		{ID: "b", Collection: models.CollectionRoster, LessonDay: models.Monday, LessonTimeMinutes: 10 * 60, DurationMinutes: 60},
	}}
	svc := newTestAvailability(hours, roster)

	got, err := svc.FirstFit(context.Background(), "Monday", "00:30:00")
	require.NoError(t, err)
	assert.Equal(t, "09:30", got)
}

func TestFirstFitFullDay(t *testing.T) {
	hours := fakeHours{rows: []models.WorkingHours{
		{ID: "mon", DayOfWeek: models.Monday, StartMinutes: 9 * 60, EndMinutes: 10 * 60},
	}}
	roster := &fakeStudentStore{entries: []*models.StudentEntry{
		{ID: "a", Collection: models.CollectionRoster, LessonDay: models.Monday, LessonTimeMinutes: 9 * 60, DurationMinutes: 60},
	}}
	svc := newTestAvailability(hours, roster)

	_, err := svc.FirstFit(context.Background(), "Monday", "00:30:00")
	assert.ErrorIs(t, err, appErrors.ErrNoSlot)
}
