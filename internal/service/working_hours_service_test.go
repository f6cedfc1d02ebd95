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

type fakeHoursStore struct {
	rows []models.WorkingHours
}

func (f *fakeHoursStore) List(context.Context) ([]models.WorkingHours, error) {
	return f.rows, nil
}

func (f *fakeHoursStore) FindByDay(_ context.Context, day models.Weekday) (*models.WorkingHours, error) {
	for i := range f.rows {
		if f.rows[i].DayOfWeek == day {
			return &f.rows[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeHoursStore) Upsert(_ context.Context, wh *models.WorkingHours) error {
	for i := range f.rows {
		if f.rows[i].DayOfWeek == wh.DayOfWeek {
			wh.ID = f.rows[i].ID
			f.rows[i] = *wh
			return nil
		}
	}
	f.rows = append(f.rows, *wh)
	return nil
}

func (f *fakeHoursStore) Delete(_ context.Context, id string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestSetWorkingHours(t *testing.T) {
	store := &fakeHoursStore{}
	svc := NewWorkingHoursService(store, nil, nil, nil)

	view, err := svc.Set(context.Background(), &dto.WorkingHoursPayload{
		DayOfWeek: "Monday",
		StartTime: "09:00",
		EndTime:   "18:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Monday", view.DayOfWeek)
	assert.Equal(t, "9 AM - 6 PM", view.Display)
	require.Len(t, store.rows, 1)
}

func TestSetWorkingHoursReplacesExistingDay(t *testing.T) {
	store := &fakeHoursStore{}
	svc := NewWorkingHoursService(store, nil, nil, nil)

	_, err := svc.Set(context.Background(), &dto.WorkingHoursPayload{DayOfWeek: "Monday", StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)
	view, err := svc.Set(context.Background(), &dto.WorkingHoursPayload{DayOfWeek: "Monday", StartTime: "10:00", EndTime: "17:00"})
	require.NoError(t, err)

	require.Len(t, store.rows, 1)
	assert.Equal(t, "10:00", view.StartTime)
}

func TestSetWorkingHoursRejectsInvertedWindow(t *testing.T) {
	svc := NewWorkingHoursService(&fakeHoursStore{}, nil, nil, nil)

	_, err := svc.Set(context.Background(), &dto.WorkingHoursPayload{DayOfWeek: "Monday", StartTime: "18:00", EndTime: "09:00"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSetWorkingHoursRejectsUnknownDay(t *testing.T) {
	svc := NewWorkingHoursService(&fakeHoursStore{}, nil, nil, nil)

	_, err := svc.Set(context.Background(), &dto.WorkingHoursPayload{DayOfWeek: "Funday", StartTime: "09:00", EndTime: "10:00"})
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
